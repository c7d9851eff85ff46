package imageconf

type value struct {
	text   string
	source string // Name of whatever last wrote the value
}

type section struct {
	name   string
	order  []string
	values map[string]*value
}

func newSection(name string) *section {
	return &section{
		name:   name,
		values: make(map[string]*value),
	}
}

func (s *section) get(option string) (string, bool) {
	v, ok := s.values[option]
	if !ok {
		return "", false
	}
	return v.text, true
}

// set overwrites in place so an option keeps its original position.
func (s *section) set(option, text, source string) {
	if v, ok := s.values[option]; ok {
		v.text = text
		v.source = source
		return
	}
	s.order = append(s.order, option)
	s.values[option] = &value{text: text, source: source}
}

func (s *section) remove(option string) bool {
	if _, ok := s.values[option]; !ok {
		return false
	}
	delete(s.values, option)
	for i, name := range s.order {
		if name == option {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *section) names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}
