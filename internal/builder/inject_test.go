// internal/builder/inject_test.go
package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInjectDevScript_BeforeClosingBody(t *testing.T) {
	in := "<html>\n<body>\n  <p>x</p>\n  </body>\n</html>"

	out := InjectDevScript(in, "js/dev.js")

	want := "<html>\n<body>\n  <p>x</p>\n" +
		"  <script type='module' src=\"js/dev.js\"></script>\n" +
		"  </body>\n</html>\n"
	require.Equal(t, want, out)
}

func TestInjectDevScript_TrailingNewlineGainsOne(t *testing.T) {
	out := InjectDevScript("  </body>\n</html>\n", "js/dev.js")

	require.Equal(t, "  <script type='module' src=\"js/dev.js\"></script>\n  </body>\n</html>\n\n", out)
}

func TestInjectDevScript_ExactlyOneTag(t *testing.T) {
	out := InjectDevScript("<body>\n<main>hi</main>\n</body>", "js/dev.js")

	require.Equal(t, 1, strings.Count(out, DevScriptTag("js/dev.js")))
	idx := strings.Index(out, DevScriptTag("js/dev.js"))
	require.True(t, strings.HasPrefix(out[idx:], DevScriptTag("js/dev.js")+"\n</body>"))
}

func TestInjectDevScript_NoClosingBodyOnlyAppendsNewline(t *testing.T) {
	out := InjectDevScript("<p>fragment</p>", "js/dev.js")

	require.Equal(t, "<p>fragment</p>\n", out)
}

func TestInjectDevScript_InlineBodyKeepsTextBeforeFirstTag(t *testing.T) {
	out := InjectDevScript("text <b>x</b></body>", "dev.js")

	require.Equal(t, "text <script type='module' src=\"dev.js\"></script>\ntext <b>x</b></body>\n", out)
}

func TestIsIndexDocument(t *testing.T) {
	require.True(t, isIndexDocument("index.md"))
	require.True(t, isIndexDocument("index.en.md"))
	require.False(t, isIndexDocument("about.md"))
	require.False(t, isIndexDocument("indexes.md"))
}
