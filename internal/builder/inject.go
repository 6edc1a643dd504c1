// internal/builder/inject.go
package builder

import (
	"strings"
)

const closingBody = "</body>"

// DevScriptTag returns the module script tag that loads src.
func DevScriptTag(src string) string {
	return `<script type='module' src="` + src + `"></script>`
}

// InjectDevScript inserts the development script tag on its own line in
// front of the line holding </body>, reusing that line's indentation.
// Every line of the result ends with a newline, including the last one, so
// text already ending in a newline gains one more.
func InjectDevScript(htmlText, src string) string {
	tag := DevScriptTag(src)

	var sb strings.Builder
	sb.Grow(len(htmlText) + len(tag) + 2)
	for _, line := range strings.Split(htmlText, "\n") {
		if strings.Contains(line, closingBody) {
			indent, _, _ := strings.Cut(line, "<")
			sb.WriteString(indent)
			sb.WriteString(tag)
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// isIndexDocument reports whether a content file is the site's index page.
func isIndexDocument(filename string) bool {
	stem, _, _ := strings.Cut(filename, ".")
	return stem == "index"
}
