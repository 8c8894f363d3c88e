package ai

import (
	"bytes"
	"context"
	"strings"
	"text/template"
)

var quoteTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"usd":   usd,
	"label": label,
}).Parse(`Hi {{if .CustomerName}}{{.CustomerName}}{{else}}there{{end}},

Thank you for your interest in a hibachi party! Here is your quote for {{.Request.Adults}} adult(s){{if .Request.Children}}, {{.Request.Children}} child(ren){{end}}{{if .Request.Toddlers}} and {{.Request.Toddlers}} toddler(s) (free){{end}}{{if .VenueAddress}} at {{.VenueAddress}}{{end}}.

Food subtotal: {{usd .Result.Subtotal}}{{if .Result.AppliedMinimum}} (party minimum applied){{end}}
{{- range .Result.Upgrades}}
{{label .Key}} x{{.Quantity}}: {{usd .Total}}
{{- end}}
{{- if .Result.TravelFee}}
Travel fee: {{usd .Result.TravelFee}}
{{- end}}
Total: {{usd .Result.GrandTotal}}

A deposit of {{usd .Result.Deposit}} secures your date; the remaining {{usd .Result.BalanceDue}} is due on the day of the event.

Let us know if you have any questions!
`))

// TemplateDrafter renders a fixed message. It is always available and is the
// fallback for model-backed drafters.
type TemplateDrafter struct{}

func NewTemplateDrafter() *TemplateDrafter {
	return &TemplateDrafter{}
}

func (d *TemplateDrafter) DraftQuoteMessage(_ context.Context, in DraftInput) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// label turns "filet_mignon" into "Filet mignon".
func label(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
