package disasm

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// HighlightID is the element id given to the highlighted line at position idx.
func HighlightID(idx int) string {
	return fmt.Sprintf("hl-%d", idx)
}

// RenderHTML renders lines as a preformatted fragment. When hl is non-nil,
// every instruction line inside the range is wrapped in a span of class
// "hl", and the id of the first one is exposed as data-first-hl on the
// wrapper so the page can scroll to it.
func RenderHTML(lines Listing, hl *Range) string {
	var b strings.Builder
	_ = Render(&b, lines, hl)
	return b.String()
}

// Render writes the fragment produced by RenderHTML to w.
func Render(w io.Writer, lines Listing, hl *Range) error {
	firstID := ""
	out := make([]string, 0, len(lines)+2)
	out = append(out, `<pre class="disasm">`)

	for idx, ln := range lines {
		// Escape first so the span markup itself is never escaped.
		safe := html.EscapeString(ln.Raw)
		if hl != nil && ln.HasAddr && hl.Contains(ln.Addr) {
			id := HighlightID(idx)
			if firstID == "" {
				firstID = id
			}
			out = append(out, fmt.Sprintf(`<span id="%s" class="hl">%s</span>`, id, safe))
			continue
		}
		out = append(out, safe)
	}
	out = append(out, `</pre>`)

	first := ""
	if firstID != "" {
		first = fmt.Sprintf(` data-first-hl="%s"`, firstID)
	}
	_, err := fmt.Fprintf(w, `<div class="disasmWrap"%s>%s</div>`, first, strings.Join(out, "\n"))
	return err
}
