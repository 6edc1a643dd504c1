// internal/frontmatter/frontmatter.go
package frontmatter

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Marker opens and closes a front matter block.
const Marker = "---"

// Metadata is the flat key/value mapping read from a document's front matter.
type Metadata map[string]string

// Get returns the value for key, or fallback when the key is absent.
func (m Metadata) Get(key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

type state int

const (
	beforeFrontMatter state = iota
	inFrontMatter
	inBody
)

// Parse splits a document into its front matter and body.
//
// The block has to open on the first line and is closed by the next marker
// line. Each line inside it is split on the first colon into a trimmed key
// and value; lines without a colon are ignored and a repeated key keeps the
// last value. A document whose block never opens or never closes has no
// metadata and its whole text is the body.
func Parse(text string) (Metadata, string) {
	lines := strings.Split(text, "\n")
	meta := Metadata{}
	st := beforeFrontMatter
	consumed := 0

	for i := 0; i < len(lines) && st != inBody; i++ {
		line := lines[i]
		switch st {
		case beforeFrontMatter:
			if !isMarker(line) {
				return Metadata{}, text
			}
			st = inFrontMatter
		case inFrontMatter:
			if isMarker(line) {
				st = inBody
				consumed = i + 1
			} else if key, value, ok := strings.Cut(line, ":"); ok {
				meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
		}
	}

	if st != inBody {
		return Metadata{}, text
	}
	return meta, strings.Join(lines[consumed:], "\n")
}

// ParseYAML reads structured front matter (YAML, TOML or JSON delimiters)
// and flattens top-level values to strings. A document without front
// matter yields empty metadata and its full text.
func ParseYAML(text string) (Metadata, string, error) {
	var raw map[string]interface{}
	body, err := frontmatter.Parse(strings.NewReader(text), &raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	meta := make(Metadata, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			meta[k] = val
		case nil:
			meta[k] = ""
		default:
			meta[k] = fmt.Sprint(val)
		}
	}
	return meta, string(body), nil
}

func isMarker(line string) bool {
	return strings.HasPrefix(line, Marker)
}
