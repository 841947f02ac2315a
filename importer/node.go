package importer

import "go.yaml.in/yaml/v4"

// resolve follows alias nodes to their anchor target.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// documentRoot unwraps the document node produced by yaml.Unmarshal into a
// *yaml.Node, returning the top-level content node or nil for empty input.
func documentRoot(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return resolve(n.Content[0])
	}
	return resolve(n)
}

func isMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

func isSequence(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// mapValue returns the value node for a key of a mapping, or nil when the
// node is not a mapping or lacks the key.
func mapValue(n *yaml.Node, key string) *yaml.Node {
	if !isMapping(n) {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

// mapEntry is one key-value pair of a mapping in source order.
type mapEntry struct {
	key   string
	value *yaml.Node
}

// mapEntries returns a mapping's pairs in source order, skipping non-scalar
// keys. Returns nil for non-mappings.
func mapEntries(n *yaml.Node) []mapEntry {
	if !isMapping(n) {
		return nil
	}
	entries := make([]mapEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			continue
		}
		entries = append(entries, mapEntry{key: k.Value, value: resolve(n.Content[i+1])})
	}
	return entries
}

// sequence returns the element nodes of a sequence, or nil.
func sequence(n *yaml.Node) []*yaml.Node {
	if !isSequence(n) {
		return nil
	}
	items := make([]*yaml.Node, 0, len(n.Content))
	for _, c := range n.Content {
		items = append(items, resolve(c))
	}
	return items
}

// asString coerces a scalar node to its textual value. Non-scalars, null
// scalars, and missing nodes all coerce to the empty string, so every
// caller gets the per-field fallback behavior for free.
func asString(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// asBool coerces a scalar node to a bool, defaulting false. The resolved
// tag decides boolean-ness, so every spelling the parser accepts ("true",
// "True", "TRUE") coerces; quoted strings keep the !!str tag and stay false.
func asBool(n *yaml.Node) bool {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!bool" {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}

// stringSeq coerces a sequence of scalars to a string slice, skipping
// non-scalar elements. Returns nil for non-sequences.
func stringSeq(n *yaml.Node) []string {
	items := sequence(n)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind == yaml.ScalarNode && item.Tag != "!!null" {
			out = append(out, item.Value)
		}
	}
	return out
}

// stringMap coerces a mapping of scalar values to a map, preserving nothing
// about order. Returns nil for non-mappings.
func stringMap(n *yaml.Node) map[string]string {
	entries := mapEntries(n)
	if entries == nil {
		return nil
	}
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.key] = asString(e.value)
	}
	return out
}
