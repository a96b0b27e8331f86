package server

import (
	"html/template"
	"net/url"
	"strings"

	"rvlogview/internal/disasm"
	"rvlogview/internal/execlog"
)

// NoMatchesFragment is returned by /api/logs when the log has no entries.
const NoMatchesFragment = `<div class="muted">No matching log lines.</div>`

var logLineTmpl = template.Must(template.New("logLine").Parse(
	`<button
  class="logLine"
  type="button"
  hx-get="{{.Target}}"
  hx-target="#disasmPanel"
  hx-swap="innerHTML"
>
  {{.Line}}{{with .Func}} <span class="fn">{{.}}</span>{{end}}
</button>`))

type logLineView struct {
	Target string
	Line   string
	Func   string
}

// DisasmTarget is the fragment URL a log entry's button requests. Entries
// missing either address request the listing without a range.
func DisasmTarget(e execlog.Entry) string {
	if e.Start == "" || e.End == "" {
		return "/api/disasm"
	}
	return "/api/disasm?start=" + url.QueryEscape(e.Start) + "&end=" + url.QueryEscape(e.End)
}

// RenderLogs renders one button per entry, or NoMatchesFragment. When funcs
// is non-nil, buttons are labelled with the function containing the start
// address.
func RenderLogs(entries []execlog.Entry, funcs *disasm.FuncIndex) string {
	if len(entries) == 0 {
		return NoMatchesFragment
	}

	parts := make([]string, 0, len(entries))
	var b strings.Builder
	for _, e := range entries {
		v := logLineView{Target: DisasmTarget(e), Line: e.Line}
		if funcs != nil && funcs.Len() > 0 {
			v.Func = funcLabel(e, funcs)
		}
		b.Reset()
		// Execution into a strings.Builder only fails on template bugs.
		if err := logLineTmpl.Execute(&b, v); err != nil {
			panic(err)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

func funcLabel(e execlog.Entry, funcs *disasm.FuncIndex) string {
	if e.Start == "" {
		return ""
	}
	addr, err := disasm.ParseAddr(e.Start)
	if err != nil {
		return ""
	}
	f, ok := funcs.Lookup(addr)
	if !ok {
		return "UNKNOWN"
	}
	return f.Display()
}
