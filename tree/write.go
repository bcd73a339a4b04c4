package tree

import (
	"bytes"
	"strings"

	"github.com/jsphweid/partwise/constants"
)

// WriteOptions controls XML formatting.
type WriteOptions struct {
	Indent string // Indentation string, "  " when empty
}

// Write renders a document with the fixed XML declaration and, when the
// document asks for one, the partwise DOCTYPE. It never fails.
func Write(doc *Document, opts WriteOptions) []byte {
	if opts.Indent == "" {
		opts.Indent = "  "
	}

	var buf bytes.Buffer
	buf.WriteString(constants.XMLDeclaration)
	buf.WriteString("\n")
	if doc.HasDoctype {
		buf.WriteString(constants.PartwiseDoctype)
		buf.WriteString("\n")
	}
	if doc.Root != nil {
		writeNode(&buf, doc.Root, 0, opts.Indent)
	}
	return buf.Bytes()
}

func writeNode(w *bytes.Buffer, n *Node, depth int, indent string) {
	writeIndent(w, depth, indent)
	w.WriteString("<")
	w.WriteString(n.Name)
	for _, attr := range n.Attrs {
		w.WriteString(" ")
		w.WriteString(attr.Name)
		w.WriteString("=\"")
		w.WriteString(EscapeAttr(attr.Value))
		w.WriteString("\"")
	}

	switch {
	case len(n.Children) == 0 && n.Text == "":
		w.WriteString("/>\n")
	case len(n.Children) == 0:
		w.WriteString(">")
		w.WriteString(EscapeText(n.Text))
		w.WriteString("</")
		w.WriteString(n.Name)
		w.WriteString(">\n")
	default:
		w.WriteString(">\n")
		for _, c := range n.Children {
			writeNode(w, c, depth+1, indent)
		}
		writeIndent(w, depth, indent)
		w.WriteString("</")
		w.WriteString(n.Name)
		w.WriteString(">\n")
	}
}

func writeIndent(w *bytes.Buffer, depth int, indent string) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}

// EscapeText escapes the basic XML entities for text content.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes text for use in a double-quoted attribute.
func EscapeAttr(s string) string {
	s = EscapeText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "\n", "&#10;")
	s = strings.ReplaceAll(s, "\t", "&#9;")
	return s
}
