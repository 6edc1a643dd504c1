// internal/builder/assets.go
package builder

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sitegen/internal/util"

	"github.com/bep/golibsass/libsass"
)

// CopyScripts creates dstDir and copies every file in srcDir into it.
// dstDir must not exist yet. Symbolic links are followed. Subdirectories
// are skipped: only a flat directory of scripts is supported.
func CopyScripts(srcDir, dstDir string, logger *slog.Logger) (int, error) {
	if err := os.Mkdir(dstDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create scripts directory: %w", err)
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read scripts directory: %w", err)
	}

	copied := 0
	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		info, err := os.Stat(src)
		if err != nil {
			return copied, err
		}
		if info.IsDir() {
			logger.Warn("Skipping directory in scripts source", "path", src)
			continue
		}
		if err := util.CopyFile(src, filepath.Join(dstDir, entry.Name())); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// StyleSource describes one stylesheet handed to a StyleCompiler.
type StyleSource struct {
	Path         string
	IncludePaths []string
	// Indented is set for .sass files.
	Indented bool
}

// StyleCompiler compiles stylesheet source text to CSS.
type StyleCompiler interface {
	Compile(source string, in StyleSource) (string, error)
}

// LibSassCompiler compiles SCSS and Sass with libsass.
type LibSassCompiler struct {
	OutputStyle string
	Precision   int
}

// Compile implements StyleCompiler.
func (c LibSassCompiler) Compile(source string, in StyleSource) (string, error) {
	transpiler, err := libsass.New(libsass.Options{
		IncludePaths: in.IncludePaths,
		OutputStyle:  libsass.ParseOutputStyle(c.OutputStyle),
		Precision:    c.Precision,
		SassSyntax:   in.Indented,
	})
	if err != nil {
		return "", err
	}
	res, err := transpiler.Execute(source)
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

// StyleResult is the outcome of a stylesheet compilation pass. A failed pass
// keeps whatever was written before the failure.
type StyleResult struct {
	Compiled []string
	Err      error
}

// OK reports whether every stylesheet compiled.
func (r StyleResult) OK() bool { return r.Err == nil }

// CompileStyles compiles every .scss and .sass file under srcDir whose name
// does not start with an underscore, writing a .css file at the same
// relative path under dstDir. Compilation stops at the first failure, which
// is returned in the result rather than as an error. A missing srcDir
// compiles nothing.
func CompileStyles(compiler StyleCompiler, srcDir, dstDir string) StyleResult {
	var res StyleResult
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == srcDir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "_") {
			return nil
		}
		ext := filepath.Ext(d.Name())
		if ext != ".scss" && ext != ".sass" {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		source, err := util.ReadFile(path)
		if err != nil {
			return err
		}
		css, err := compiler.Compile(source, StyleSource{
			Path:         path,
			IncludePaths: []string{srcDir, filepath.Dir(path)},
			Indented:     ext == ".sass",
		})
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}

		out := filepath.Join(dstDir, strings.TrimSuffix(rel, ext)+".css")
		if err := util.WriteFile(out, css); err != nil {
			return err
		}
		res.Compiled = append(res.Compiled, out)
		return nil
	})
	res.Err = err
	return res
}
