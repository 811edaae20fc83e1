package xmltree

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const indentStep = "  "

// Format renders the tree as pretty-printed lines: two-space indent,
// attributes in document order, self-closing empty elements. The output
// is deterministic, so the same tree always yields the same lines and
// two renderings can be diffed line by line.
func Format(root *Node) []string {
	if root == nil {
		return nil
	}
	var lines []string
	formatNode(&lines, root, 0)
	return lines
}

// FormatString renders the tree as a single string with a trailing newline
func FormatString(root *Node) string {
	lines := Format(root)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatNode(lines *[]string, n *Node, depth int) {
	indent := strings.Repeat(indentStep, depth)

	var open strings.Builder
	open.WriteString("<")
	open.WriteString(n.Tag)
	for _, a := range n.Attrs {
		open.WriteString(" ")
		open.WriteString(a.Name)
		open.WriteString(`="`)
		open.WriteString(escape(a.Value))
		open.WriteString(`"`)
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		*lines = append(*lines, indent+open.String()+"/>")
	case len(n.Children) == 0:
		*lines = append(*lines, indent+open.String()+">"+escape(n.Text)+"</"+n.Tag+">")
	default:
		*lines = append(*lines, indent+open.String()+">")
		if n.Text != "" {
			*lines = append(*lines, indent+indentStep+escape(n.Text))
		}
		for _, child := range n.Children {
			formatNode(lines, child, depth+1)
		}
		*lines = append(*lines, indent+"</"+n.Tag+">")
	}
}

// escape applies XML escaping. Newlines and tabs become character
// references, which keeps every rendered value on a single line.
func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
