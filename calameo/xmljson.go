package calameo

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// xmlNode is one parsed element.
type xmlNode struct {
	name     string
	attrs    []xml.Attr
	children []*xmlNode
	text     strings.Builder
}

// XMLToJSON converts an XML document to its JSON equivalent:
//
//   - the root element name is the single top-level key
//   - attributes and child elements become object members
//   - an element without children or attributes becomes its trimmed text
//   - repeated sibling names become arrays
//   - an element whose children are all named "item" becomes an array
func XMLToJSON(data []byte) ([]byte, error) {
	root, err := parseXML(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{root.name: root.value()})
}

func parseXML(data []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	// encoding/xml only reads UTF-8 itself
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var root *xmlNode
	var stack []*xmlNode
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{name: t.Name.Local, attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("failed to parse XML: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("failed to parse XML: no root element")
	}
	return root, nil
}

func (n *xmlNode) value() any {
	if len(n.children) == 0 && len(n.attrs) == 0 {
		return strings.TrimSpace(n.text.String())
	}

	if len(n.attrs) == 0 && n.allChildrenNamed("item") {
		items := make([]any, 0, len(n.children))
		for _, child := range n.children {
			items = append(items, child.value())
		}
		return items
	}

	obj := make(map[string]any, len(n.attrs)+len(n.children))
	for _, attr := range n.attrs {
		obj[attr.Name.Local] = attr.Value
	}
	for _, child := range n.children {
		v := child.value()
		existing, seen := obj[child.name]
		if !seen {
			obj[child.name] = v
			continue
		}
		if list, ok := existing.(xmlList); ok {
			obj[child.name] = append(list, v)
		} else {
			obj[child.name] = xmlList{existing, v}
		}
	}
	if len(n.children) == 0 {
		if text := strings.TrimSpace(n.text.String()); text != "" {
			obj["value"] = text
		}
	}
	return obj
}

func (n *xmlNode) allChildrenNamed(name string) bool {
	if len(n.children) == 0 {
		return false
	}
	for _, child := range n.children {
		if child.name != name {
			return false
		}
	}
	return true
}

// xmlList marks arrays built from repeated siblings so a real child value
// that happens to be a slice is never appended to.
type xmlList []any
