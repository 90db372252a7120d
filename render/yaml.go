package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/pickle/errors"
	"github.com/wippyai/pickle/value"
)

// YAML tags for kinds without a native YAML form.
const (
	YAMLTagTuple     = "!!python/tuple"
	YAMLTagSet       = "!!set"
	YAMLTagFrozenSet = "!!python/frozenset"
	YAMLTagBinary    = "!!binary"
	YAMLTagByteArray = "!!python/bytearray"
)

// YAML encodes v as a YAML document. Shared containers are emitted once
// with an anchor and referenced by alias afterwards, so cyclic values
// encode too.
func YAML(v value.Value) ([]byte, error) {
	b := &yamlBuilder{
		shared:  sharedContainers(v),
		anchors: make(map[value.Value]*yaml.Node),
	}
	root := b.node(v)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "yaml encode")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "yaml encoder close")
	}
	return buf.Bytes(), nil
}

type yamlBuilder struct {
	shared  map[value.Value]int
	anchors map[value.Value]*yaml.Node
}

func (b *yamlBuilder) node(v value.Value) *yaml.Node {
	if v == nil {
		return scalarNode("!!null", "null")
	}
	if v.Kind().IsMutable() {
		if target, ok := b.anchors[v]; ok {
			return &yaml.Node{Kind: yaml.AliasNode, Alias: target, Value: target.Anchor}
		}
	}

	var n *yaml.Node
	switch c := v.(type) {
	case value.NoneType:
		return scalarNode("!!null", "null")
	case value.Bool:
		return scalarNode("!!bool", strconv.FormatBool(bool(c)))
	case value.Int:
		return scalarNode("!!int", strconv.FormatInt(int64(c), 10))
	case *value.Long:
		return scalarNode("!!int", c.Big().String())
	case value.Float:
		return scalarNode("!!float", yamlFloat(float64(c)))
	case value.Str:
		return scalarNode("!!str", string(c))
	case value.Bytes:
		return scalarNode(YAMLTagBinary, base64.StdEncoding.EncodeToString(c))
	case value.Tuple:
		n = &yaml.Node{Kind: yaml.SequenceNode, Tag: YAMLTagTuple}
		b.fill(n, c)
		return n
	case *value.ByteArray:
		n = scalarNode(YAMLTagByteArray, base64.StdEncoding.EncodeToString(c.Data))
		b.anchor(v, n)
		return n
	case *value.List:
		n = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		b.anchor(v, n)
		b.fill(n, c.Items)
	case *value.Dict:
		n = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		b.anchor(v, n)
		c.Each(func(k, val value.Value) bool {
			n.Content = append(n.Content, b.node(k), b.node(val))
			return true
		})
	case *value.Set:
		n = &yaml.Node{Kind: yaml.MappingNode, Tag: YAMLTagSet}
		b.anchor(v, n)
		b.members(n, c.Items())
	case *value.FrozenSet:
		n = &yaml.Node{Kind: yaml.MappingNode, Tag: YAMLTagFrozenSet}
		b.anchor(v, n)
		b.members(n, c.Items())
	default:
		return scalarNode("!!str", value.Repr(v))
	}
	return n
}

// anchor registers n before its children are built so a self-reference
// resolves to an alias.
func (b *yamlBuilder) anchor(v value.Value, n *yaml.Node) {
	if id, ok := b.shared[v]; ok {
		n.Anchor = fmt.Sprintf("id%03d", id)
		b.anchors[v] = n
	}
}

func (b *yamlBuilder) fill(n *yaml.Node, items []value.Value) {
	for _, it := range items {
		n.Content = append(n.Content, b.node(it))
	}
}

func (b *yamlBuilder) members(n *yaml.Node, items []value.Value) {
	for _, it := range items {
		n.Content = append(n.Content, b.node(it), scalarNode("!!null", "null"))
	}
}

func scalarNode(tag, val string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
}

func yamlFloat(f float64) string {
	switch s := value.FormatFloat(f); s {
	case "nan":
		return ".nan"
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	default:
		return s
	}
}
