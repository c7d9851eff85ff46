package imageconf

import (
	"io"
	"strings"
)

// WriteTo renders the raw store as INI text. Sections and options keep insertion
// order, multi-line values continue on tab-indented lines and every section is
// followed by a blank line. An empty Config writes nothing.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, s := range c.sections {
		writeSectionHeader(&b, s.name)
		for _, name := range s.order {
			writeOption(&b, name, s.values[name].text)
		}
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String returns the INI text produced by WriteTo.
func (c *Config) String() string {
	var b strings.Builder
	_, _ = c.WriteTo(&b)
	return b.String()
}

func writeSectionHeader(b *strings.Builder, name string) {
	b.WriteByte('[')
	b.WriteString(name)
	b.WriteString("]\n")
}

func writeOption(b *strings.Builder, name, value string) {
	lines := strings.Split(value, "\n")
	b.WriteString(name)
	b.WriteString(" =")
	if lines[0] != "" {
		b.WriteByte(' ')
		b.WriteString(lines[0])
	}
	b.WriteByte('\n')
	for _, line := range lines[1:] {
		b.WriteByte('\t')
		b.WriteString(line)
		b.WriteByte('\n')
	}
}
