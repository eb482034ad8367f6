// Package markdown renders catalog content written as markdown with a YAML
// frontmatter header.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{md: md}
}

// Render converts source to HTML. When meta is non-nil the frontmatter is
// decoded into it; a document without frontmatter leaves meta untouched.
func (p *Parser) Render(source []byte, meta any) ([]byte, error) {
	ctx := parser.NewContext()
	var buf bytes.Buffer

	err := p.md.Convert(source, &buf, parser.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	if meta == nil {
		return buf.Bytes(), nil
	}
	data := frontmatter.Get(ctx)
	if data == nil {
		return buf.Bytes(), nil
	}
	err = data.Decode(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frontmatter: %w", err)
	}
	return buf.Bytes(), nil
}
