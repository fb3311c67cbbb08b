package synth

import "strings"

// htmlReplacer escapes markup characters and maps blank lines to paragraph
// breaks and single newlines to <br>. Replacement output is never rescanned,
// so inserted tags are not escaped.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\n\n", "</p><p>",
	"\n", "<br>",
)

// TextToHTML renders a plain-text body as minimal HTML.
func TextToHTML(text string) string {
	return "<html><body><p>" + htmlReplacer.Replace(text) + "</p></body></html>"
}
