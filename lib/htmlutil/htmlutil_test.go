package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, fragment string) *html.Node {
	node, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	return node
}

func TestGetText(t *testing.T) {
	node := parse(t, "<div>a<b>b</b>c</div>")
	require.Equal(t, "abc", GetText(node))
}

func TestSeparatedText(t *testing.T) {
	node := parse(t, "<div><b> first </b><br><i>second</i>third</div>")
	require.Equal(t, "first|second|third", SeparatedText(node, "|"))
}

func TestSeparatedTextDropsEmptySegments(t *testing.T) {
	node := parse(t, "<div><span>  </span><span>only</span><span>\n\t</span></div>")
	require.Equal(t, "only", SeparatedText(node, "|"))
}
