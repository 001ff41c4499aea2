package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string {
	if jf.Pretty {
		return "json"
	}
	return "json-compact"
}

// Format generates JSON output for comparison results
func (jf JSONFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	if jf.Pretty {
		return json.MarshalIndent(compSet, "", "  ")
	}
	return json.Marshal(compSet)
}
