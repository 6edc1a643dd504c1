// internal/builder/goldmark_extensions.go
package builder

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mdLinkTransformer points relative links at .md sources to the .html page
// the build writes for them.
type mdLinkTransformer struct{}

func newMDLinkTransformer() parser.ASTTransformer {
	return &mdLinkTransformer{}
}

// Transform walks the document and rewrites link destinations in place.
func (t *mdLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		link.Destination = rewriteMDLink(link.Destination)
		return ast.WalkContinue, nil
	})
}

// rewriteMDLink swaps a trailing .md for .html, keeping any fragment or
// query. Absolute URLs are left alone.
func rewriteMDLink(dest []byte) []byte {
	u, err := url.Parse(string(dest))
	if err != nil || u.Scheme != "" || u.Host != "" {
		return dest
	}

	path, rest := dest, []byte(nil)
	if i := bytes.IndexAny(dest, "?#"); i >= 0 {
		path, rest = dest[:i], dest[i:]
	}
	if !bytes.HasSuffix(path, []byte(".md")) {
		return dest
	}

	out := make([]byte, 0, len(dest)+2)
	out = append(out, bytes.TrimSuffix(path, []byte(".md"))...)
	out = append(out, ".html"...)
	return append(out, rest...)
}
