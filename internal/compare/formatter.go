package compare

import (
	"sort"
	"strings"
)

// Formatter renders a comparison set in one output format
type Formatter interface {
	Name() string
	Format(compSet *ComparisonSet) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(compSet *ComparisonSet) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(compSet *ComparisonSet) ([]byte, error) { return f.F(compSet) }

var formatters = map[string]Formatter{
	"table":        TableFormatter{},
	"csv":          CSVFormatter{},
	"html":         HTMLFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"json-compact": JSONFormatter{},
}

var formatAliases = map[string]string{
	"console": "table",
	"text":    "table",
	"htm":     "html",
}

// GetFormatterByName returns the named formatter or nil
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	return formatters[key]
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
