package fill

import (
	"bytes"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	msgMissingFromPool = `Could not remove {{ .Item }} from pool for {{ .Player }} as it's already missing from it.`
	msgUnknownItem     = `Could not create {{ .Item }} for {{ .Player }}: {{ .Detail }}.`
	msgUnknownLocation = `Could not find location {{ .Location }} in the world of {{ .Target }} for {{ .Player }}.`
	msgNoLocation      = `Could not place {{ .Item }} for {{ .Player }}: none of {{ .Location | default "the listed locations" }} are free.`
	msgPlaceFailed     = `Could not place {{ .Item }} at {{ .Location }} for {{ .Player }}: {{ .Detail }}.`
	msgUnreachable     = `no reachable location accepts {{ .Item }} for {{ .Player }}{{ if .Detail }} ({{ .Detail }}){{ end }}`
)

// templateFuncs provides utility functions for message templates.
var templateFuncs = sprig.TxtFuncMap()

type messageData struct {
	Item     string
	Location string
	Player   string
	Target   string
	Detail   string
}

// renderMessage expands tmpl with data. A template that fails to parse or
// execute yields a plain fallback message rather than an error.
func renderMessage(tmpl string, data messageData) string {
	out, err := expandTemplate(tmpl, data)
	if err != nil {
		slog.Error("rendering fill message", "template", tmpl, "error", err)
		return fmt.Sprintf("fill message for item %q, location %q, player %q: %s",
			data.Item, data.Location, data.Player, data.Detail)
	}
	return out
}

func expandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
