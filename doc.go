// Package imageconf reads layered INI configuration for image builds.
//
// Quick Start:
//
//	cfg := imageconf.New()
//	if _, err := cfg.Read("defaults.ini", "product/eos.ini", "arch/arm64.ini"); err != nil {
//	    return err
//	}
//	merger := imageconf.NewMerger(cfg,
//	    imageconf.MergeRule{Section: "flatpak-remote-*", Option: "apps"},
//	    imageconf.MergeRule{Section: "image", Option: "packages"},
//	)
//	if err := merger.Merge(); err != nil {
//	    return err
//	}
//	apps, err := cfg.GetList("flatpak-remote-eos-apps", "apps")
//
// Later files override earlier ones per option; missing files are skipped.
// Values may reference ${option} (same section, then [build]) or
// ${section:option}. List options are assembled from "<opt>_add_<suffix>" and
// "<opt>_del_<suffix>" fragments by Merger.
//
// See example_test.go for detailed usage.
package imageconf
