// Package structdata decodes structured-data files into a generic value
// graph. Mappings keep their key insertion order, which the table renderer
// relies on to derive stable column sets.
package structdata

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docpipe/pkg/interfaces"
)

// Map is an insertion-ordered string-keyed mapping. Later Sets of an existing
// key update the value without disturbing the original position.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{values: map[string]any{}}
}

// Set stores a value under key, appending the key on first insertion.
func (m *Map) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key and whether it was present.
func (m *Map) Get(key string) (any, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Decoder implements interfaces.DataDecoder over YAML input.
type Decoder struct{}

// NewDecoder creates a YAML decoder instance.
func NewDecoder() *Decoder {
	return &Decoder{}
}

var _ interfaces.DataDecoder = (*Decoder)(nil)

// Decode parses the supplied bytes into a generic value graph: sequences
// become []any, mappings become *Map, scalars their native Go types. Empty
// input decodes to nil.
func (d *Decoder) Decode(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("structdata decode: %w", err)
	}
	if root.Kind == 0 {
		return nil, nil
	}
	return convert(&root)
}

func convert(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return convert(node.Content[0])
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := convert(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			value, err := convert(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, value)
		}
		return m, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("structdata decode scalar at line %d: %w", node.Line, err)
		}
		return value, nil
	case yaml.AliasNode:
		return convert(node.Alias)
	default:
		return nil, fmt.Errorf("structdata decode: unsupported node kind %d at line %d", node.Kind, node.Line)
	}
}
