// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Front matter formats understood by the builder.
const (
	FrontMatterFlat = "flat"
	FrontMatterYAML = "yaml"
)

// SiteConfig holds the configuration from the site.yaml file.
// Relative directories are resolved against the working directory.
type SiteConfig struct {
	ContentDir      string         `yaml:"content_dir"`
	TemplateDir     string         `yaml:"template_dir"`
	StaticDir       string         `yaml:"static_dir"`
	OutputDir       string         `yaml:"output_dir"`
	DefaultTemplate string         `yaml:"default_template"`
	StrictTemplates *bool          `yaml:"strict_templates"`
	DevMode         *bool          `yaml:"dev_mode"`
	DevScript       string         `yaml:"dev_script"`
	FrontMatter     string         `yaml:"front_matter"`
	Markdown        MarkdownConfig `yaml:"markdown"`
	Style           StyleConfig    `yaml:"style"`
}

// MarkdownConfig controls Markdown conversion.
type MarkdownConfig struct {
	Extensions   []string `yaml:"extensions"`
	RewriteLinks *bool    `yaml:"rewrite_links"`
	Sanitize     bool     `yaml:"sanitize"`
	EditML       bool     `yaml:"editml"`
}

// StyleConfig controls stylesheet compilation.
type StyleConfig struct {
	OutputStyle string `yaml:"output_style"`
	Precision   int    `yaml:"precision"`
}

// Default returns the configuration used when no site.yaml exists.
func Default() SiteConfig {
	cfg := SiteConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadSiteConfig reads the YAML config at path. A .env file next to it is
// loaded first, and ${VAR} references in the YAML are expanded from the
// environment. A missing config file is not an error.
func LoadSiteConfig(path string) (SiteConfig, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("could not load env file %s: %w", envPath, err)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	cfg := SiteConfig{}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the builder cannot act on.
func (c SiteConfig) Validate() error {
	switch c.FrontMatter {
	case FrontMatterFlat, FrontMatterYAML:
	default:
		return fmt.Errorf("unknown front_matter format %q", c.FrontMatter)
	}
	switch c.Style.OutputStyle {
	case "nested", "expanded", "compact", "compressed":
	default:
		return fmt.Errorf("unknown style.output_style %q", c.Style.OutputStyle)
	}
	for _, ext := range c.Markdown.Extensions {
		switch ext {
		case "gfm", "footnote", "typographer":
		default:
			return fmt.Errorf("unknown markdown extension %q", ext)
		}
	}
	return nil
}

// Strict reports whether undefined template variables fail the render.
func (c SiteConfig) Strict() bool { return c.StrictTemplates == nil || *c.StrictTemplates }

// Dev reports whether the development script is injected into the index page.
func (c SiteConfig) Dev() bool { return c.DevMode == nil || *c.DevMode }

// RewriteMarkdownLinks reports whether links to .md files are pointed at their .html output.
func (c MarkdownConfig) RewriteMarkdownLinks() bool {
	return c.RewriteLinks == nil || *c.RewriteLinks
}

func (c *SiteConfig) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.TemplateDir == "" {
		c.TemplateDir = "templates"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.DefaultTemplate == "" {
		c.DefaultTemplate = "default.html"
	}
	if c.DevScript == "" {
		c.DevScript = "js/dev.js"
	}
	if c.FrontMatter == "" {
		c.FrontMatter = FrontMatterFlat
	}
	if c.Style.OutputStyle == "" {
		c.Style.OutputStyle = "expanded"
	}
}
