// internal/builder/builder.go
package builder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sitegen/internal/config"
	"sitegen/internal/frontmatter"
	"sitegen/internal/util"

	"github.com/google/uuid"
)

const markdownExt = ".md"

// BuildSite rebuilds the whole site: it recreates the output directory,
// renders every Markdown file in the content directory, copies scripts and
// compiles stylesheets. Any failure other than a stylesheet error aborts
// the build.
func BuildSite(site config.SiteConfig, opts BuildOptions) (Report, error) {
	start := time.Now()
	report := Report{BuildID: uuid.NewString()}
	logger := opts.logger().With("build_id", report.BuildID)
	out := opts.stdout()

	logger.Info("Cleaning output directory", "output", site.OutputDir)
	if err := os.RemoveAll(site.OutputDir); err != nil {
		return report, fmt.Errorf("failed to clean output directory %s: %w", site.OutputDir, err)
	}
	if err := os.MkdirAll(site.OutputDir, 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory %s: %w", site.OutputDir, err)
	}

	renderer := NewRenderer(NewEnvironment(site.TemplateDir, site.Strict()), RenderOptions{
		DefaultTemplate: site.DefaultTemplate,
		Extensions:      site.Markdown.Extensions,
		RewriteLinks:    site.Markdown.RewriteMarkdownLinks(),
		Sanitize:        site.Markdown.Sanitize,
		EditML:          site.Markdown.EditML,
	})

	pages, err := convertMarkdown(site, renderer, logger)
	report.Pages = pages
	if err != nil {
		return report, err
	}

	scripts, err := CopyScripts(
		filepath.Join(site.StaticDir, "js"),
		filepath.Join(site.OutputDir, "js"),
		logger,
	)
	report.Scripts = scripts
	if err != nil {
		return report, err
	}
	logger.Debug("Copied scripts", "count", scripts)

	compiler := opts.Styles
	if compiler == nil {
		compiler = LibSassCompiler{OutputStyle: site.Style.OutputStyle, Precision: site.Style.Precision}
	}
	report.Styles = CompileStyles(compiler,
		filepath.Join(site.StaticDir, "scss"),
		filepath.Join(site.OutputDir, "css"),
	)
	if !report.Styles.OK() {
		// Stylesheet errors never fail the build.
		fmt.Fprintln(out, report.Styles.Err)
		logger.Warn("Stylesheet compilation failed, continuing", "error", report.Styles.Err)
	} else {
		logger.Debug("Compiled stylesheets", "count", len(report.Styles.Compiled))
	}

	report.Elapsed = time.Since(start)
	fmt.Fprintf(out, "Finished site build in %.3f second(s)\n", report.Elapsed.Seconds())
	logger.Info("Build finished", "pages", report.Pages, "scripts", report.Scripts, "elapsed", report.Elapsed)
	return report, nil
}

// convertMarkdown renders every Markdown file of the content directory, in
// name order, into the output directory.
func convertMarkdown(site config.SiteConfig, renderer *Renderer, logger *slog.Logger) (int, error) {
	entries, err := os.ReadDir(site.ContentDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read content directory: %w", err)
	}

	pages := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		path := filepath.Join(site.ContentDir, entry.Name())
		doc, err := renderDocument(site, renderer, path)
		if err != nil {
			return pages, fmt.Errorf("failed to render page %s: %w", path, err)
		}

		outputPath := filepath.Join(site.OutputDir, doc.OutputName())
		if err := util.WriteFile(outputPath, doc.Rendered); err != nil {
			return pages, fmt.Errorf("failed to write page %s: %w", outputPath, err)
		}
		logger.Debug("Rendered page", "file", path, "output", outputPath)
		pages++
	}
	return pages, nil
}

// renderDocument runs one file through parse, convert, render and, for the
// index page, dev script injection.
func renderDocument(site config.SiteConfig, renderer *Renderer, path string) (Document, error) {
	text, err := util.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	doc := Document{Name: filepath.Base(path)}
	switch site.FrontMatter {
	case config.FrontMatterYAML:
		if doc.Meta, doc.Body, err = frontmatter.ParseYAML(text); err != nil {
			return Document{}, err
		}
	default:
		doc.Meta, doc.Body = frontmatter.Parse(text)
	}

	if doc.Content, err = renderer.Convert(doc.Body); err != nil {
		return Document{}, err
	}
	if doc.Rendered, err = renderer.Render(doc.Meta, doc.Content); err != nil {
		return Document{}, err
	}
	if site.Dev() && isIndexDocument(doc.Name) {
		doc.Rendered = InjectDevScript(doc.Rendered, site.DevScript)
	}
	return doc, nil
}

// outputName swaps the trailing .md of a content file name for .html.
func outputName(name string) string {
	return strings.TrimSuffix(name, markdownExt) + ".html"
}
