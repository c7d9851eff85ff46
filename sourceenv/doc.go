// Package sourceenv applies environment variables as an override layer.
//
// Key mapping: PREFIX_SECTION__OPTION → [section] option, lowercased.
// FLATPAK__APPS_ADD_CI → [flatpak] apps_add_ci
//
// Values are taken verbatim; ${...} references inside them are resolved later
// like any other value.
//
// Example:
//
//	cfg := imageconf.New()
//	cfg.Read("defaults.ini", "product/eos.ini")
//	cfg.Load(ctx, sourceenv.New(sourceenv.Options{Prefix: "EIB_"}))
package sourceenv
