// internal/scaffold/scaffold.go
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"sitegen/internal/config"
	"sitegen/internal/util"

	"gopkg.in/yaml.v3"
)

// CreateNewSite writes a minimal buildable site into dir. dir may be
// missing or empty; anything else is refused.
func CreateNewSite(dir string, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s is not empty", dir)
	}

	cfg, err := yaml.Marshal(siteYAML{
		ContentDir:      "content",
		TemplateDir:     "templates",
		StaticDir:       "static",
		OutputDir:       "public",
		DefaultTemplate: "default.html",
		FrontMatter:     config.FrontMatterFlat,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal site config: %w", err)
	}

	files := map[string]string{
		"site.yaml":              string(cfg),
		"content/index.md":       indexMdContent,
		"content/about.md":       aboutMdContent,
		"templates/default.html": templateDefaultContent,
		"templates/_head.html":   templateHeadContent,
		"static/js/dev.js":       devJsContent,
		"static/js/main.js":      mainJsContent,
		"static/scss/style.scss": styleScssContent,
		"static/scss/_vars.scss": varsScssContent,
	}
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := util.WriteFile(filepath.Join(dir, path), files[path]); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}

	fmt.Fprintln(out, "Site scaffolded. You can now:")
	fmt.Fprintln(out, "  cd", dir)
	fmt.Fprintln(out, "  sitegen")
	return nil
}

// siteYAML is the subset of config.SiteConfig written into a new site.
type siteYAML struct {
	ContentDir      string `yaml:"content_dir"`
	TemplateDir     string `yaml:"template_dir"`
	StaticDir       string `yaml:"static_dir"`
	OutputDir       string `yaml:"output_dir"`
	DefaultTemplate string `yaml:"default_template"`
	FrontMatter     string `yaml:"front_matter"`
}

const indexMdContent = `---
title: Home
description: A new site built with sitegen.
---
# Welcome

This page was generated from *content/index.md*. Read more [about](about.md) it.
`

const aboutMdContent = `---
title: About
description: What this site is.
---
# About

Edit the files under *content/* and run ` + "`sitegen`" + ` again.
`

const templateHeadContent = `{{ define "head" }}
<head>
  <meta charset="utf-8">
  <title>{{ .title }}</title>
  <meta name="description" content="{{ .description }}">
  <link rel="stylesheet" href="css/style.css">
  <script type="module" src="js/main.js"></script>
</head>
{{ end }}`

const templateDefaultContent = `<!DOCTYPE html>
<html>
{{ template "head" . }}
<body>
  <main>
    {{ .content }}
  </main>
  <footer><a href="index.html">home</a></footer>
</body>
</html>
`

const devJsContent = `// Loaded on the index page of development builds only.
console.info("sitegen development build");
`

const mainJsContent = `document.documentElement.classList.add("js");
`

const varsScssContent = `$text: #222;
$background: #fdfdfd;
$measure: 700px;
`

const styleScssContent = `@import "vars";

body {
  font-family: sans-serif;
  max-width: $measure;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: $text;
  background: $background;

  footer {
    text-align: center;
    font-size: 0.9em;
  }
}
`
