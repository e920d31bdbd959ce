package render

import "regexp"

// Output formats.
const (
	FormatHTML     = "html"
	FormatText     = "text"
	FormatJSON     = "json"
	FormatTerminal = "term"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
)

// Formats lists every supported format.
var Formats = []string{FormatHTML, FormatText, FormatJSON, FormatTerminal, FormatDOT, FormatSVG}

var namespaceRe = regexp.MustCompile(`https?://[^\s]+[/#]`)

// ShortenIRI removes every http(s) namespace prefix from text, up to and
// including the last "/" or "#" of each URL.
func ShortenIRI(text string) string {
	return namespaceRe.ReplaceAllString(text, "")
}

func predicateText(p string, full bool) string {
	if full {
		return p
	}
	return ShortenIRI(p)
}
