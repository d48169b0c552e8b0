package commands

// reportTemplate renders an ApplyReport as markdown.
const reportTemplate = `# {{ if .Script }}{{ .Script }}{{ else }}Script report{{ end }}

{{ plural .Applied "step" }} applied, {{ .Failed }} failed, {{ .Skipped }} skipped.

| # | Op | Status | Error |
|---|----|--------|-------|
{{- range .Results }}
| {{ inc .Index }} | {{ code (printf "%s" .Op) }} | {{ .Status }} | {{ cell .Error }} |
{{- end }}
{{ if .Notifications }}
## Notifications
{{ range .Notifications }}
- **{{ .Level }}** {{ .Message }}
{{- end }}
{{ end }}
## Labels
{{ if .State.Labels.All }}
| Label | Color | Active | Annotations |
|-------|-------|--------|-------------|
{{- range .State.Labels.All }}
| {{ cell .Name }} | {{ code .Color }} | {{ .IsActive }} | {{ len .Annotations }} |
{{- end }}
{{ else }}
No labels.
{{ end }}
{{- if .State.Source }}
Source: {{ code .State.Source }}, {{ plural .State.Sequence.Len "symbol" }}.
{{ end }}`
