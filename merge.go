package imageconf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Azhovan/imageconf/internal/pattern"
)

// Merger reconciles list fragments into merged options.
//
// For each rule, every matching section's "<opt>_add_<suffix>" and
// "<opt>_del_<suffix>" options are resolved and split on whitespace. Each word
// is counted once per add fragment naming it and discounted once per del
// fragment naming it; words with a positive count form the result. The sorted
// result is stored as <opt>, one word per line, and the fragments are removed.
// Counting is commutative, so files contributing fragments can be read in any
// order.
//
// A section that already holds a plain <opt> keeps it; its fragments are
// discarded without being applied.
type Merger struct {
	cfg   *Config
	rules []MergeRule
}

// NewMerger creates a Merger operating on cfg.
func NewMerger(cfg *Config, rules ...MergeRule) *Merger {
	m := &Merger{cfg: cfg}
	m.SetRules(rules)
	return m
}

// SetRules replaces the merge rules. Rules are applied in the given order.
func (m *Merger) SetRules(rules []MergeRule) {
	m.rules = append([]MergeRule(nil), rules...)
}

// Rules returns a copy of the current rules.
func (m *Merger) Rules() []MergeRule {
	return append([]MergeRule(nil), m.rules...)
}

// Merge applies every rule. Sections are processed one at a time: when a
// fragment fails to resolve, Merge returns the error and sections merged
// before it stay merged.
func (m *Merger) Merge() error {
	names := m.cfg.Sections()
	for _, rule := range m.rules {
		matcher := pattern.Compile(rule.Section)
		for _, name := range matcher.Filter(names) {
			if err := m.mergeSection(name, rule.Option); err != nil {
				return fmt.Errorf("merge %s in [%s]: %w", rule.Option, name, err)
			}
		}
	}
	return nil
}

func (m *Merger) mergeSection(name, base string) error {
	s, ok := m.cfg.index[name]
	if !ok {
		return nil
	}

	var adds, dels []string
	for _, opt := range s.order {
		switch kind, ok := pattern.SplitFragment(base, opt); {
		case !ok:
		case kind == pattern.Add:
			adds = append(adds, opt)
		default:
			dels = append(dels, opt)
		}
	}
	if len(adds) == 0 && len(dels) == 0 {
		return nil
	}

	if _, exists := s.get(base); exists {
		m.cfg.logger.Debug("merged option already set, discarding fragments",
			"section", name, "option", base, "fragments", len(adds)+len(dels))
	} else {
		counts := make(map[string]int)
		if err := m.count(name, adds, counts, 1); err != nil {
			return err
		}
		if err := m.count(name, dels, counts, -1); err != nil {
			return err
		}

		result := make([]string, 0, len(counts))
		for tok, n := range counts {
			if n > 0 {
				result = append(result, tok)
			}
		}
		sort.Strings(result)
		s.set(base, strings.Join(result, "\n"), SourceMerge)

		m.cfg.logger.Debug("merged option", "section", name, "option", base, "values", len(result))
	}

	for _, opt := range adds {
		s.remove(opt)
	}
	for _, opt := range dels {
		s.remove(opt)
	}
	return nil
}

// count resolves each fragment and adds delta to the count of every distinct
// word in it.
func (m *Merger) count(sectionName string, options []string, counts map[string]int, delta int) error {
	for _, opt := range options {
		v, err := m.cfg.Get(sectionName, opt)
		if err != nil {
			return err
		}
		seen := make(map[string]bool)
		for _, tok := range strings.Fields(v) {
			if !seen[tok] {
				seen[tok] = true
				counts[tok] += delta
			}
		}
	}
	return nil
}
