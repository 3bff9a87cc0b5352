package openapi

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/oasmock/pkg/schema"
)

// methods lists the path item keys that declare operations, in output order.
var methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Operation is one method on one path.
type Operation struct {
	Method  string // upper case, e.g. "GET"
	Path    string // path template, e.g. "/pets/{id}"
	ID      string
	Summary string

	// Responses in declared order.
	Responses []*Response
}

// Response is one declared response of an operation.
type Response struct {
	Status      string // "200", "2XX" or "default"
	Description string
	Headers     []*Header
	Content     []*MediaType

	// Err records a decoding problem (for example a cyclic $ref) so that one bad
	// response does not prevent the rest of the document from being served.
	Err error
}

// Header is a declared response header. Node is a response wrapper around the
// header's schema and examples.
type Header struct {
	Name     string
	Required bool
	Node     *schema.Node
}

// MediaType is one entry of a response's content map.
type MediaType struct {
	Type string
	Node *schema.Node
}

// decodeOperations walks paths in declared order.
func decodeOperations(root *yaml.Node) (title, version string, ops []*Operation, err error) {
	d := schema.NewDecoder(root)
	doc, err := d.Lookup("#")
	if err != nil {
		return "", "", nil, err
	}
	if doc.Kind != yaml.MappingNode {
		return "", "", nil, fmt.Errorf("%w: document is not an object", schema.ErrInvalidSchema)
	}

	if info := mapValue(doc, "info"); info != nil {
		title = scalar(mapValue(info, "title"))
		version = scalar(mapValue(info, "version"))
	}

	paths := mapValue(doc, "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return title, version, nil, nil
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		itemPath := "#/paths/" + escape(path)
		item, _, err := d.Resolve(paths.Content[i+1], itemPath)
		if err != nil {
			return "", "", nil, fmt.Errorf("path %s: %w", path, err)
		}
		if item.Kind != yaml.MappingNode {
			continue
		}
		for _, method := range methods {
			opNode := mapValue(item, method)
			if opNode == nil || opNode.Kind != yaml.MappingNode {
				continue
			}
			ops = append(ops, decodeOperation(d, opNode, method, path, itemPath+"/"+method))
		}
	}
	return title, version, ops, nil
}

func decodeOperation(d *schema.Decoder, n *yaml.Node, method, path, ptr string) *Operation {
	op := &Operation{
		Method:  strings.ToUpper(method),
		Path:    path,
		ID:      scalar(mapValue(n, "operationId")),
		Summary: scalar(mapValue(n, "summary")),
	}
	responses := mapValue(n, "responses")
	if responses == nil || responses.Kind != yaml.MappingNode {
		return op
	}
	for i := 0; i+1 < len(responses.Content); i += 2 {
		status := responses.Content[i].Value
		op.Responses = append(op.Responses, decodeResponse(d, responses.Content[i+1], status, ptr+"/responses/"+escape(status)))
	}
	return op
}

func decodeResponse(d *schema.Decoder, n *yaml.Node, status, ptr string) *Response {
	resp := &Response{Status: status}
	n, ptr, err := d.Resolve(n, ptr)
	if err != nil {
		resp.Err = err
		return resp
	}
	resp.Description = scalar(mapValue(n, "description"))

	if headers := mapValue(n, "headers"); headers != nil && headers.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(headers.Content); i += 2 {
			name := headers.Content[i].Value
			hPtr := ptr + "/headers/" + escape(name)
			hNode, hPtr, err := d.Resolve(headers.Content[i+1], hPtr)
			if err != nil {
				resp.Err = err
				return resp
			}
			node, err := d.Response(hNode, hPtr)
			if err != nil {
				resp.Err = err
				return resp
			}
			resp.Headers = append(resp.Headers, &Header{
				Name:     name,
				Required: scalar(mapValue(hNode, "required")) == "true",
				Node:     node,
			})
		}
	}

	if content := mapValue(n, "content"); content != nil && content.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(content.Content); i += 2 {
			typ := content.Content[i].Value
			node, err := d.Response(content.Content[i+1], ptr+"/content/"+escape(typ))
			if err != nil {
				resp.Err = err
				return resp
			}
			resp.Content = append(resp.Content, &MediaType{Type: typ, Node: node})
		}
	}
	return resp
}

func mapValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			v := n.Content[i+1]
			for v.Kind == yaml.AliasNode {
				v = v.Alias
			}
			return v
		}
	}
	return nil
}

func scalar(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func escape(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}
