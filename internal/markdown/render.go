// Package markdown provides the pure text-to-HTML transform used for prompt
// previews. It never touches storage; sanitization strips anything unsafe
// for embedding in a page.
package markdown

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Render converts markdown source to sanitized HTML.
func Render(source string) string {
	// Parser instances are single-use; build one per call
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(source))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.Render(doc, renderer)

	return policy.Sanitize(string(out))
}
