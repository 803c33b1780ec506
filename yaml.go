package pdxtext

import (
	"bytes"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders v as a yaml.Node so that object fields keep their
// document order. Dates become strings in game form.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

// YAML renders the materialized document as a YAML mapping.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.Root()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.b))
	case KindInt:
		return scalarNode("!!int", strconv.FormatInt(v.i, 10))
	case KindUint:
		return scalarNode("!!int", strconv.FormatUint(v.u, 10))
	case KindFloat:
		return scalarNode("!!float", yamlFloat(v.f))
	case KindDate:
		return scalarNode("!!str", v.d.String())
	case KindString:
		return scalarNode("!!str", v.s)
	case KindParameter:
		return scalarNode("!!str", parameterText(v.s, v.b))
	case KindOperator:
		return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			scalarNode("!!str", v.op.Name()),
			v.operand.yamlNode(),
		}}
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(v.arr))}
		for _, e := range v.arr {
			n.Content = append(n.Content, e.yamlNode())
		}
		if len(v.arr) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	case KindObject:
		fields := v.obj.Fields()
		n := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(fields))}
		for _, f := range fields {
			n.Content = append(n.Content, scalarNode("!!str", f.Key), f.Value.yamlNode())
		}
		if len(fields) == 0 {
			n.Style = yaml.FlowStyle
		}
		return n
	}
	return scalarNode("!!null", "null")
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
