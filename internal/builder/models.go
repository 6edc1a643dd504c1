// internal/builder/models.go
package builder

import (
	"io"
	"log/slog"
	"os"
	"time"

	"sitegen/internal/frontmatter"
)

// BuildOptions carries the collaborators of a build. Nil fields fall back to
// stdout, slog.Default() and libsass.
type BuildOptions struct {
	Stdout io.Writer
	Logger *slog.Logger
	Styles StyleCompiler
}

func (o BuildOptions) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Document is one content file on its way through the pipeline.
type Document struct {
	Name     string // file name inside the content directory
	Meta     frontmatter.Metadata
	Body     string // Markdown after the front matter
	Content  string // Body converted to HTML
	Rendered string // final page text
}

// OutputName is the file name the rendered page is written to.
func (d Document) OutputName() string {
	return outputName(d.Name)
}

// Report summarizes a finished build.
type Report struct {
	BuildID string
	Pages   int
	Scripts int
	Styles  StyleResult
	Elapsed time.Duration
}
