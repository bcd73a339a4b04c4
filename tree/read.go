package tree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/jsphweid/partwise/errors"
)

// Well-known namespace URIs that encoding/xml substitutes for attribute
// prefixes; mapped back so attribute names are written as they were read.
var namespacePrefixes = map[string]string{
	"http://www.w3.org/1999/xlink":              "xlink",
	"http://www.w3.org/XML/1998/namespace":      "xml",
	"http://www.w3.org/2000/xmlns/":             "xmlns",
	"http://www.w3.org/2001/XMLSchema-instance": "xsi",
}

// Read decodes well-formed markup into an ordered Document. xmlquery decodes
// through golang.org/x/net/html/charset, so a non-UTF-8 encoding declared in
// the prolog is converted on the way in.
func Read(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewMalformed("XML", err)
	}

	doc := &Document{}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if doc.Root != nil {
			return nil, errors.NewMalformed("XML", fmt.Errorf("multiple root elements <%s> and <%s>", doc.Root.Name, c.Data))
		}
		doc.Root = convert(c)
	}
	if doc.Root == nil {
		return nil, errors.NewMalformed("XML", fmt.Errorf("no root element"))
	}

	doc.Version = doc.Root.AttrValue("version")
	if i := bytes.Index(data, []byte("<"+doc.Root.Name)); i > 0 {
		doc.HasDoctype = bytes.Contains(data[:i], []byte("<!DOCTYPE"))
	}
	return doc, nil
}

func convert(x *xmlquery.Node) *Node {
	n := &Node{Name: qualify(x.Prefix, x.Data)}
	for _, a := range x.Attr {
		n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name.Space, a.Name.Local), Value: a.Value})
	}

	var text strings.Builder
	for c := x.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			n.Children = append(n.Children, convert(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}
	// whitespace between child elements is layout; a leaf keeps all of it
	if len(n.Children) == 0 {
		n.Text = text.String()
	}
	return n
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func attrName(space, local string) string {
	if space == "" {
		return local
	}
	if p, ok := namespacePrefixes[space]; ok {
		return p + ":" + local
	}
	if strings.Contains(space, "/") {
		// unknown URI; the local part is the best we can do
		return local
	}
	return space + ":" + local
}

// Query evaluates an XPath expression over raw document bytes and returns
// the trimmed text of every match.
func Query(data []byte, expr string) ([]string, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, errors.Wrap(err, "invalid xpath")
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewMalformed("XML", err)
	}

	nodes, err := xmlquery.QueryAll(root, expr)
	if err != nil {
		return nil, errors.Wrap(err, "xpath query failed")
	}

	res := make([]string, 0, len(nodes))
	for _, n := range nodes {
		res = append(res, strings.TrimSpace(n.InnerText()))
	}
	return res, nil
}
