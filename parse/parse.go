// Package parse builds a model.Score from a MusicXML partwise document.
//
// The builder is tolerant: unknown elements are skipped, enumerated values
// outside their allow-list are dropped and unparseable numbers fall back to
// a default. Only malformed markup and an unsupported root element fail.
package parse

import (
	"strconv"
	"strings"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

const rootElement = "score-partwise"

// Options configures the builder.
type Options struct {
	// OnDrop, when set, is called with the path of every element or value
	// the builder skips. The default is to drop silently.
	OnDrop func(path string)
}

// Parse reads and builds a score with default options.
func Parse(data []byte) (*model.Score, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions reads and builds a score.
func ParseWithOptions(data []byte, opts Options) (*model.Score, error) {
	doc, err := tree.Read(data)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts)
}

// Build converts an ordered document into a Score.
func Build(doc *tree.Document, opts Options) (*model.Score, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.NewMalformed("MusicXML", nil)
	}
	if doc.Root.Name != rootElement {
		return nil, errors.NewUnsupportedRoot(doc.Root.Name)
	}
	b := &builder{opts: opts}
	return b.score(doc.Root), nil
}

type builder struct {
	opts Options
}

func (b *builder) drop(path string) {
	if b.opts.OnDrop != nil {
		b.opts.OnDrop(path)
	}
}

func (b *builder) dropChild(path string, n *tree.Node) {
	b.drop(path + "/" + n.Name)
}

// enum returns v when it is allowed, otherwise reports the drop and
// returns "".
func (b *builder) enum(path, v string, allowed allowList) string {
	v = strings.TrimSpace(v)
	if v == "" || allowed.has(v) {
		return v
	}
	b.drop(path + "=" + v)
	return ""
}

// attrEnum reads an enumerated attribute.
func (b *builder) attrEnum(path string, n *tree.Node, name string, allowed allowList) string {
	return b.enum(path+"/@"+name, n.AttrValue(name), allowed)
}

func (b *builder) score(root *tree.Node) *model.Score {
	s := &model.Score{ID: model.NewID(), Version: root.AttrValue("version")}
	path := rootElement
	for _, c := range root.Children {
		switch c.Name {
		case "work":
			s.Work = &model.Work{Number: c.ChildText("work-number"), Title: c.ChildText("work-title")}
		case "movement-number":
			s.MovementNumber = c.Text
		case "movement-title":
			s.MovementTitle = c.Text
		case "identification":
			s.Identification = b.identification(path+"/identification", c)
		case "defaults":
			s.Defaults = b.defaults(path+"/defaults", c)
		case "credit":
			s.Credits = append(s.Credits, b.credit(path+"/credit", c))
		case "part-list":
			s.PartList = append(s.PartList, b.partList(path+"/part-list", c)...)
		case "part":
			s.Parts = append(s.Parts, b.part(path, c))
		default:
			b.dropChild(path, c)
		}
	}
	return s
}

func (b *builder) part(path string, n *tree.Node) *model.Part {
	p := &model.Part{ID: n.AttrValue("id"), UID: model.NewID()}
	path += "/part[" + p.ID + "]"
	for _, c := range n.Children {
		if c.Name != "measure" {
			b.dropChild(path, c)
			continue
		}
		p.Measures = append(p.Measures, b.measure(path, c))
	}
	return p
}

// formatting returns the attributes of n not consumed by a typed field, in
// document order.
func formatting(n *tree.Node, consumed ...string) model.Formatting {
	var res model.Formatting
	for _, a := range n.Attrs {
		skip := false
		for _, c := range consumed {
			if a.Name == c {
				skip = true
				break
			}
		}
		if !skip {
			res = append(res, model.Attr{Name: a.Name, Value: a.Value})
		}
	}
	return res
}

// mark converts an element into a generic Mark.
func mark(n *tree.Node) model.Mark {
	m := model.Mark{Name: n.Name, Text: n.Text, Formatting: formatting(n)}
	for _, c := range n.Children {
		m.Marks = append(m.Marks, mark(c))
	}
	return m
}

func (b *builder) marks(path string, n *tree.Node, allowed allowList) []model.Mark {
	var res []model.Mark
	for _, c := range n.Children {
		if allowed != nil && !allowed.has(c.Name) {
			b.dropChild(path, c)
			continue
		}
		res = append(res, mark(c))
	}
	return res
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// tolerate "2.0" style integers
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		return int(f), true
	}
	return v, true
}

// intText parses a leaf's text, falling back to def.
func (b *builder) intText(path string, n *tree.Node, def int) int {
	if n == nil {
		return def
	}
	v, ok := parseInt(n.Text)
	if !ok {
		b.drop(path + "/" + n.Name + "=" + n.TrimmedText())
		return def
	}
	return v
}

func (b *builder) childInt(path string, n *tree.Node, name string, def int) int {
	return b.intText(path, n.Child(name), def)
}

func (b *builder) childIntPtr(path string, n *tree.Node, name string) *int {
	c := n.Child(name)
	if c == nil {
		return nil
	}
	v, ok := parseInt(c.Text)
	if !ok {
		b.drop(path + "/" + name + "=" + c.TrimmedText())
		return nil
	}
	return &v
}

func (b *builder) attrInt(path string, n *tree.Node, name string) int {
	s, ok := n.Attr(name)
	if !ok {
		return 0
	}
	v, ok := parseInt(s)
	if !ok {
		b.drop(path + "/@" + name + "=" + s)
		return 0
	}
	return v
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func (b *builder) childFloat(path string, n *tree.Node, name string) float64 {
	if v := b.childFloatPtr(path, n, name); v != nil {
		return *v
	}
	return 0
}

func (b *builder) childFloatPtr(path string, n *tree.Node, name string) *float64 {
	c := n.Child(name)
	if c == nil {
		return nil
	}
	v, ok := parseFloat(c.Text)
	if !ok {
		b.drop(path + "/" + name + "=" + c.TrimmedText())
		return nil
	}
	return &v
}

func (b *builder) attrFloatPtr(path string, n *tree.Node, name string) *float64 {
	s, ok := n.Attr(name)
	if !ok {
		return nil
	}
	v, ok := parseFloat(s)
	if !ok {
		b.drop(path + "/@" + name + "=" + s)
		return nil
	}
	return &v
}

func (b *builder) offset(path string, n *tree.Node) *model.Offset {
	if n == nil {
		return nil
	}
	return &model.Offset{
		Value: b.intText(path, n, 0),
		Sound: b.attrEnum(path+"/offset", n, "sound", yesNo),
	}
}
