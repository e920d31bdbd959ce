package jsonld

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/prettymarkup/pkg/errors"
)

// ScriptType is the media type of embedded JSON-LD blocks.
const ScriptType = "application/ld+json"

// ResolveInput returns the JSON-LD text contained in text.
func ResolveInput(text string) (string, error) {
	if json.Valid([]byte(strings.TrimSpace(text))) {
		return text, nil
	}

	blocks, err := ExtractScripts(text)
	if err != nil {
		return "", err
	}
	switch len(blocks) {
	case 0:
		return text, nil
	case 1:
		return blocks[0], nil
	default:
		return "", errors.New(errors.ErrCodeAmbiguousInput,
			"found %d JSON-LD script blocks, expected exactly one", len(blocks))
	}
}

// ExtractScripts returns the bodies of every JSON-LD script element in an
// HTML document, in document order.
func ExtractScripts(text string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse HTML")
	}

	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && isJSONLDScript(n) {
			blocks = append(blocks, scriptText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return blocks, nil
}

func isJSONLDScript(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, "type") {
			mediaType, _, _ := strings.Cut(a.Val, ";")
			return strings.EqualFold(strings.TrimSpace(mediaType), ScriptType)
		}
	}
	return false
}

func scriptText(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(buf.String())
}
