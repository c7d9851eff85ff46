package imageconf

// Provenance names used for values not written by a file or Source.
const (
	SourceSet   = "set"   // Config.Set
	SourceMerge = "merge" // Merger.Merge
)

// OptionProvenance describes where an option's current value came from.
type OptionProvenance struct {
	Section    string
	Option     string
	SourceName string // e.g., "file:/etc/eib/product/eos.ini", "env:IMAGECONF_"
}

// Provenance reports which source last wrote an option.
func (c *Config) Provenance(sectionName, option string) (OptionProvenance, bool) {
	s, ok := c.index[sectionName]
	if !ok {
		return OptionProvenance{}, false
	}
	v, ok := s.values[option]
	if !ok {
		return OptionProvenance{}, false
	}
	return OptionProvenance{Section: sectionName, Option: option, SourceName: v.source}, true
}

// AllProvenance returns provenance for every option, in section and option order.
func (c *Config) AllProvenance() []OptionProvenance {
	var out []OptionProvenance
	for _, s := range c.sections {
		for _, name := range s.order {
			out = append(out, OptionProvenance{
				Section:    s.name,
				Option:     name,
				SourceName: s.values[name].source,
			})
		}
	}
	return out
}
