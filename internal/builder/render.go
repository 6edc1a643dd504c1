// internal/builder/render.go
package builder

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"sitegen/internal/frontmatter"

	"github.com/microcosm-cc/bluemonday"
	"github.com/verkaro/editml-go"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// TemplateKey is the front matter key that selects a template.
const TemplateKey = "template"

// ContentKey is the template variable holding the converted body.
const ContentKey = "content"

// RenderOptions configures a Renderer.
type RenderOptions struct {
	DefaultTemplate string
	Extensions      []string
	RewriteLinks    bool
	Sanitize        bool
	EditML          bool
}

// Renderer turns a document body into HTML and merges it into a template.
type Renderer struct {
	env             *Environment
	markdown        goldmark.Markdown
	sanitizer       *bluemonday.Policy
	editML          bool
	defaultTemplate string
}

// NewRenderer builds a Renderer that resolves templates through env.
func NewRenderer(env *Environment, opts RenderOptions) *Renderer {
	var exts []goldmark.Extender
	for _, name := range opts.Extensions {
		switch name {
		case "gfm":
			exts = append(exts, extension.GFM)
		case "footnote":
			exts = append(exts, extension.Footnote)
		case "typographer":
			exts = append(exts, extension.Typographer)
		}
	}

	var parserOpts []parser.Option
	if opts.RewriteLinks {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(newMDLinkTransformer(), 100),
		))
	}

	r := &Renderer{
		env: env,
		markdown: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parserOpts...),
			// Raw HTML in content passes through untouched.
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		editML:          opts.EditML,
		defaultTemplate: opts.DefaultTemplate,
	}
	if opts.Sanitize {
		r.sanitizer = bluemonday.UGCPolicy()
	}
	if r.defaultTemplate == "" {
		r.defaultTemplate = "default.html"
	}
	return r
}

// Convert renders a Markdown body to HTML. Trailing newlines are dropped.
func (r *Renderer) Convert(body string) (string, error) {
	if r.editML {
		clean, err := cleanEditML(body)
		if err != nil {
			return "", err
		}
		body = clean
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}

	out := buf.Bytes()
	if r.sanitizer != nil {
		out = r.sanitizer.SanitizeBytes(out)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// Render merges converted HTML into the template selected by meta. Every
// metadata key becomes a top-level template variable next to "content",
// which always holds the converted HTML.
func (r *Renderer) Render(meta frontmatter.Metadata, content string) (string, error) {
	name := meta.Get(TemplateKey, r.defaultTemplate)

	vars := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		vars[k] = v
	}
	vars[ContentKey] = template.HTML(content)

	return r.env.Render(name, vars)
}

// cleanEditML resolves editorial markup to the accepted text.
func cleanEditML(body string) (string, error) {
	nodes, parseIssues := editml.Parse(body)
	if len(parseIssues) > 0 && parseIssues[0].Severity == editml.SeverityError {
		return "", fmt.Errorf("editml parsing error: %s", parseIssues[0].Message)
	}
	clean, transformIssues := editml.TransformCleanView(nodes)
	if len(transformIssues) > 0 && transformIssues[0].Severity == editml.SeverityError {
		return "", fmt.Errorf("editml transformation error: %s", transformIssues[0].Message)
	}
	return clean, nil
}
