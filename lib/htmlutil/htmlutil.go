package htmlutil

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// SeparatedText flattens a node to plain text, joining the text of each
// text node with `sep` so boundaries between sub-elements survive the
// markup being stripped. Text nodes are trimmed and empty ones dropped.
func SeparatedText(node *html.Node, sep string) string {
	var segments []string
	collectTextRecursive(node, &segments)
	return strings.Join(segments, sep)
}

func collectTextRecursive(node *html.Node, segments *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*segments = append(*segments, text)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		collectTextRecursive(child, segments)
		child = child.NextSibling
	}
}
