// internal/builder/render_test.go
package builder

import (
	"os"
	"path/filepath"
	"testing"

	"sitegen/internal/frontmatter"

	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func newTestRenderer(t *testing.T, strict bool, opts RenderOptions, templates map[string]string) *Renderer {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, templates)
	return NewRenderer(NewEnvironment(dir, strict), opts)
}

func TestConvert_Heading(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, nil)

	out, err := r.Convert("# Hi\n")
	require.NoError(t, err)
	require.Equal(t, "<h1>Hi</h1>", out)
}

func TestConvert_CommonConstructs(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, nil)

	out, err := r.Convert("Some *em* and **strong** with [a link](http://example.com).\n\n- one\n- two\n\n```\ncode\n```\n")
	require.NoError(t, err)
	require.Contains(t, out, "<em>em</em>")
	require.Contains(t, out, "<strong>strong</strong>")
	require.Contains(t, out, `<a href="http://example.com">a link</a>`)
	require.Contains(t, out, "<li>one</li>")
	require.Contains(t, out, "<pre><code>code\n</code></pre>")
}

func TestConvert_RawHTMLPassesThrough(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, nil)

	out, err := r.Convert("<div class=\"note\">hi</div>\n")
	require.NoError(t, err)
	require.Equal(t, `<div class="note">hi</div>`, out)
}

func TestConvert_SanitizeStripsScripts(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{Sanitize: true}, nil)

	out, err := r.Convert("<script>alert(1)</script>\n\nhello\n")
	require.NoError(t, err)
	require.NotContains(t, out, "<script")
	require.Contains(t, out, "<p>hello</p>")
}

func TestConvert_RewritesMarkdownLinks(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{RewriteLinks: true}, nil)

	out, err := r.Convert("[a](about.md) [b](guide.md#setup) [c](https://example.com/readme.md)\n")
	require.NoError(t, err)
	require.Contains(t, out, `href="about.html"`)
	require.Contains(t, out, `href="guide.html#setup"`)
	require.Contains(t, out, `href="https://example.com/readme.md"`)
}

func TestConvert_KeepsMarkdownLinksWhenDisabled(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, nil)

	out, err := r.Convert("[a](about.md)\n")
	require.NoError(t, err)
	require.Contains(t, out, `href="about.md"`)
}

func TestConvert_EditMLPlainTextUnchanged(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{EditML: true}, nil)

	out, err := r.Convert("plain words\n")
	require.NoError(t, err)
	require.Contains(t, out, "plain words")
}

func TestConvert_GFMTables(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{Extensions: []string{"gfm"}}, nil)

	out, err := r.Convert("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	require.Contains(t, out, "<table>")
}

func TestRender_DefaultTemplate(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{DefaultTemplate: "default.html"}, map[string]string{
		"default.html": "<title>{{ .title }}</title><main>{{ .content }}</main>",
	})

	meta, body := frontmatter.Parse("---\ntitle: Hello\n---\n# Hi\n")
	content, err := r.Convert(body)
	require.NoError(t, err)

	out, err := r.Render(meta, content)
	require.NoError(t, err)
	require.Equal(t, "<title>Hello</title><main><h1>Hi</h1></main>", out)
}

func TestRender_TemplateKeySelectsTemplate(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, map[string]string{
		"default.html": "default",
		"post.html":    "post:{{ .content }}",
	})

	out, err := r.Render(frontmatter.Metadata{"template": "post.html"}, "<p>x</p>")
	require.NoError(t, err)
	require.Equal(t, "post:<p>x</p>", out)

	out, err = r.Render(frontmatter.Metadata{}, "<p>x</p>")
	require.NoError(t, err)
	require.Equal(t, "default", out)
}

func TestRender_ContentOverridesMetadataKey(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, map[string]string{
		"default.html": "{{ .content }}",
	})

	out, err := r.Render(frontmatter.Metadata{"content": "from front matter"}, "<p>body</p>")
	require.NoError(t, err)
	require.Equal(t, "<p>body</p>", out)
}

func TestRender_MetadataIsEscaped(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, map[string]string{
		"default.html": "<h1>{{ .title }}</h1>",
	})

	out, err := r.Render(frontmatter.Metadata{"title": "Tom & Jerry"}, "")
	require.NoError(t, err)
	require.Equal(t, "<h1>Tom &amp; Jerry</h1>", out)
}

func TestRender_MissingTemplate(t *testing.T) {
	r := newTestRenderer(t, true, RenderOptions{}, map[string]string{
		"default.html": "ok",
	})

	_, err := r.Render(frontmatter.Metadata{"template": "nope.html"}, "")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}
