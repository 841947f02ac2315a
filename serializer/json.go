package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/ziahq/specstudio/document"
)

// SerializeJSON renders a document as indented JSON with the same key order
// as the YAML output. It reuses the YAML emission and walks the resulting
// node tree so both previews stay in lockstep; a failure here indicates a
// bug in the YAML emitter, not bad input.
func SerializeJSON(doc *document.Document) (string, error) {
	text := Serialize(doc)

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return "", fmt.Errorf("serialized YAML did not re-parse: %w", err)
	}

	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, &root); err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// writeNodeJSON writes a yaml.Node as JSON, preserving mapping key order
// from the node tree.
func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		return writeNodeJSON(buf, node.Content[0])

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeScalarJSON(buf, node)

	case yaml.AliasNode:
		if node.Alias != nil {
			return writeNodeJSON(buf, node.Alias)
		}
		buf.WriteString("null")
		return nil

	default:
		return fmt.Errorf("unsupported node kind %v", node.Kind)
	}
}

// writeScalarJSON maps a YAML scalar to its JSON form using the resolved
// tag. Unquoted scalars in the emitted YAML are strings, booleans, or
// numbers only.
func writeScalarJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Tag {
	case "!!null":
		buf.WriteString("null")
		return nil
	case "!!bool", "!!int", "!!float":
		buf.WriteString(node.Value)
		return nil
	default:
		data, err := json.Marshal(node.Value)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
