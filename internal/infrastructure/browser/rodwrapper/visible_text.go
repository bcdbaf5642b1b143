// Package rodwrapper holds page-content helpers shared by the rod adapter
// and host login hooks.
package rodwrapper

import (
	"strings"

	"golang.org/x/net/html"
)

// Subtrees a user never sees rendered.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"iframe":   true,
	"head":     true,
	"template": true,
}

// VisibleText flattens rendered HTML into the text a user would see,
// skipping script/style/head subtrees and collapsing whitespace. Host
// hooks use it to detect login error banners without depending on exact
// page structure. Unparseable input degrades to the raw string.
func VisibleText(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if skippedTags[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
