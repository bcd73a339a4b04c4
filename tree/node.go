// Package tree holds the order-preserving element tree that MusicXML is read
// into and written from.
//
// A Node keeps its attributes and children in document order, so repeated
// same-named siblings (several <notations> or <direction-type> blocks) and
// marker elements such as <chord/> survive a read/write cycle unchanged.
package tree

import (
	"strconv"
	"strings"
)

// Attr is a single XML attribute. Presence in Node.Attrs is what marks an
// attribute as set; an empty Value is still present.
type Attr struct {
	Name  string
	Value string
}

// Node is an element with ordered attributes and either children or text.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Document is a parsed file: the root element plus the prolog facts that the
// writer normalises.
type Document struct {
	Root       *Node
	Version    string
	HasDoctype bool
}

// New returns an element with the given name.
func New(name string) *Node {
	return &Node{Name: name}
}

// Attr returns the value of the named attribute and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns the named attribute or "" when absent.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child element with the given name in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var res []*Node
	for _, c := range n.Children {
		if c.Name == name {
			res = append(res, c)
		}
	}
	return res
}

// Has reports whether a child element with the given name exists.
func (n *Node) Has(name string) bool {
	return n.Child(name) != nil
}

// ChildText returns the text of the first child with the given name.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// TrimmedText is Text without surrounding whitespace.
func (n *Node) TrimmedText() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

// SetAttr appends an attribute. Callers build nodes in output order, so
// SetAttr never reorders or replaces.
func (n *Node) SetAttr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// SetAttrIf appends the attribute only when value is non-empty.
func (n *Node) SetAttrIf(name, value string) *Node {
	if value != "" {
		n.SetAttr(name, value)
	}
	return n
}

// SetIntAttrIf appends an integer attribute when v is non-zero.
func (n *Node) SetIntAttrIf(name string, v int) *Node {
	if v != 0 {
		n.SetAttr(name, strconv.Itoa(v))
	}
	return n
}

// SetFloatAttr appends a float attribute when v is non-nil.
func (n *Node) SetFloatAttr(name string, v *float64) *Node {
	if v != nil {
		n.SetAttr(name, FormatFloat(*v))
	}
	return n
}

// Append adds child elements and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Add creates, appends and returns a new child element.
func (n *Node) Add(name string) *Node {
	c := New(name)
	n.Children = append(n.Children, c)
	return c
}

// AddText appends a leaf child holding text.
func (n *Node) AddText(name, text string) *Node {
	c := n.Add(name)
	c.Text = text
	return c
}

// AddTextIf appends a leaf child only when text is non-empty.
func (n *Node) AddTextIf(name, text string) {
	if text != "" {
		n.AddText(name, text)
	}
}

// AddInt appends a leaf child holding an integer.
func (n *Node) AddInt(name string, v int) *Node {
	return n.AddText(name, strconv.Itoa(v))
}

// AddIntIf appends an integer leaf when v is non-zero.
func (n *Node) AddIntIf(name string, v int) {
	if v != 0 {
		n.AddInt(name, v)
	}
}

// AddFloat appends a float leaf when v is non-nil.
func (n *Node) AddFloat(name string, v *float64) {
	if v != nil {
		n.AddText(name, FormatFloat(*v))
	}
}

// AddEmpty appends a marker element such as <chord/>.
func (n *Node) AddEmpty(name string) *Node {
	return n.Add(name)
}

// FormatFloat renders a float in the shortest form that parses back exactly.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
