// Package templates carries the embedded email report templates. The body
// template mixes Go template fields (date, greeting, currency position)
// with {tag_name} placeholders that are substituted by the report
// renderer after the template executes.
package templates

import _ "embed"

//go:embed report-body.html
var ReportBody string

//go:embed report-shell.html
var ReportShell string
