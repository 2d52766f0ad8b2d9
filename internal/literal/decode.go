// Package literal reads and writes trees of nested literals as text documents.
//
// Every format keeps the key order of the file. Mappings become TensorTree
// nodes; lists and scalars are leaves, ready for treetensor.Tensor.
package literal

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/treetensor/internal/tree"
)

// Format is a document syntax.
type Format int

// Supported formats.
const (
	YAML Format = iota
	JSON
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrEmptyDocument is returned when the input holds no document.
var ErrEmptyDocument = errors.New("literal: empty document")

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("literal: unknown document extension %q", filepath.Ext(path))
	}
}

// Decode reads one document. A mapping at the top level gives a *tree.Node,
// anything else the plain literal ([]any, int, float64, bool, string).
func Decode(r io.Reader, format Format) (any, error) {
	switch format {
	case YAML, JSON:
		// JSON is a subset of YAML, and the YAML node API keeps key order.
		var doc yaml.Node
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrEmptyDocument
			}
			return nil, fmt.Errorf("literal: %s: %w", format, err)
		}
		return fromYAML(&doc)

	case TOML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("literal: toml: %w", err)
		}
		// Values come from the decoder, key order from the parser.
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("literal: toml: %w", err)
		}
		if m == nil {
			return nil, ErrEmptyDocument
		}
		order, err := tomlKeyOrder(data)
		if err != nil {
			return nil, fmt.Errorf("literal: toml: %w", err)
		}
		node, err := fromTOML(m, order, nil)
		if err != nil {
			return nil, fmt.Errorf("literal: toml: %w", err)
		}
		return node, nil

	default:
		return nil, fmt.Errorf("literal: unsupported format %s", format)
	}
}

// DecodeString is Decode over a string.
func DecodeString(s string, format Format) (any, error) {
	return Decode(strings.NewReader(s), format)
}

// ReadFile decodes the document at path, picking the format from its extension.
func ReadFile(path string) (any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("literal: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	v, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return fromYAML(n.Content[0])

	case yaml.AliasNode:
		return fromYAML(n.Alias)

	case yaml.MappingNode:
		entries := make([]tree.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("literal: line %d: mapping keys must be scalars", key.Line)
			}
			v, err := fromYAML(value)
			if err != nil {
				return nil, err
			}
			entries = append(entries, tree.Entry{Key: key.Value, Value: v})
		}
		node, err := tree.New(tree.TensorTree, entries...)
		if err != nil {
			return nil, fmt.Errorf("literal: line %d: %w", n.Line, err)
		}
		return node, nil

	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, item := range n.Content {
			if item.Kind == yaml.MappingNode {
				return nil, fmt.Errorf("literal: line %d: mappings inside lists are not supported", item.Line)
			}
			v, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("literal: line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// keyOrder holds, per table path, the child keys in the order the document
// first names them.
type keyOrder map[string][]string

func (o keyOrder) see(path []string, key string) {
	p := strings.Join(path, "\x00")
	if !slices.Contains(o[p], key) {
		o[p] = append(o[p], key)
	}
}

// seeKey records every part of a dotted key below path and returns the path
// the key names.
func (o keyOrder) seeKey(path []string, it unstable.Iterator) []string {
	path = slices.Clone(path)
	for it.Next() {
		key := string(it.Node().Data)
		o.see(path, key)
		path = append(path, key)
	}
	return path
}

func (o keyOrder) seeKeyValue(table []string, kv *unstable.Node) {
	path := o.seeKey(table, kv.Key())
	if v := kv.Value(); v.Kind == unstable.InlineTable {
		it := v.Children()
		for it.Next() {
			o.seeKeyValue(path, it.Node())
		}
	}
}

func tomlKeyOrder(data []byte) (keyOrder, error) {
	order := keyOrder{}
	var table []string

	var p unstable.Parser
	p.Reset(data)
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = order.seeKey(nil, e.Key())
		case unstable.KeyValue:
			order.seeKeyValue(table, e)
		}
	}
	return order, p.Error()
}

func fromTOML(m map[string]any, order keyOrder, path []string) (*tree.Node, error) {
	keys := slices.Clone(order[strings.Join(path, "\x00")])
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}

	entries := make([]tree.Entry, 0, len(m))
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if sub, isTable := v.(map[string]any); isTable {
			node, err := fromTOML(sub, order, append(slices.Clip(path), k))
			if err != nil {
				return nil, err
			}
			v = node
		}
		entries = append(entries, tree.Entry{Key: k, Value: v})
	}
	return tree.New(tree.TensorTree, entries...)
}
