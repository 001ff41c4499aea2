package compare

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": func(d decimal.Decimal) string { return "$" + FormatMoney(d) },
	"pct":  func(d decimal.Decimal) string { return d.StringFixed(1) + "%" },
}).Parse(htmlTemplateSource))

func (HTMLFormatter) Format(compSet *ComparisonSet) ([]byte, error) {
	title := compSet.Title
	if title == "" {
		title = "Childcare scenario comparison"
	}
	data := struct {
		*ComparisonSet
		Heading     string
		MetricLabel string
	}{compSet, title, compSet.Metric.Label()}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
