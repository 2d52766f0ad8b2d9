package literal

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/treetensor/internal/tensor"
	"github.com/born-ml/treetensor/internal/tree"
)

// Encode writes v as a YAML document. Trees keep their key order, tensors are
// written as flow-style nested lists and shapes as flow-style lists. Floats
// always carry a decimal point so they decode back as floats.
func Encode(w io.Writer, v any) error {
	n, err := toYAML(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("literal: %w", err)
	}
	return enc.Close()
}

func toYAML(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *tree.Node:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, child := range x.All() {
			value, err := toYAML(child)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, value)
		}
		return n, nil
	case *tensor.RawTensor:
		return toYAML(x.ToList())
	case tensor.Shape:
		return toYAML([]int(x))
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range x {
			child, err := toYAML(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case []int:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, d := range x {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(d)})
		}
		return n, nil
	case float32:
		return floatNode(float64(x), 32), nil
	case float64:
		return floatNode(x, 64), nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, fmt.Errorf("literal: %T: %w", v, err)
		}
		return n, nil
	}
}

func floatNode(f float64, bits int) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}
