package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Node is a read-only cursor into the document that remembers its path.
// The zero Node (or one returned for a missing key) does not exist; scalar
// accessors on it return a MissingFieldError naming the path.
type Node struct {
	node *yaml.Node
	path string
}

// Entry is one key/value pair of a mapping, in document order.
type Entry struct {
	Key   string
	Value Node
}

// Path returns the dotted path of the node, e.g. strategies.BTC.USD[0].name.
func (n Node) Path() string {
	if n.path == "" {
		return "<root>"
	}
	return n.path
}

// Exists reports whether the node is present and not null.
func (n Node) Exists() bool {
	if n.node == nil {
		return false
	}
	r := resolve(n.node)
	return !(r.Kind == yaml.ScalarNode && r.Tag == "!!null")
}

// Key returns the child stored under key. Non-mapping parents have no children.
func (n Node) Key(key string) Node {
	child := Node{path: joinPath(n.path, key)}
	if n.node == nil {
		return child
	}

	r := resolve(n.node)
	if r.Kind != yaml.MappingNode {
		return child
	}
	for i := 0; i+1 < len(r.Content); i += 2 {
		if r.Content[i].Value == key {
			child.node = r.Content[i+1]
			return child
		}
	}

	return child
}

// Entries returns the mapping entries in document order.
// A missing or null node has no entries.
func (n Node) Entries() ([]Entry, error) {
	if !n.Exists() {
		return nil, nil
	}

	r := resolve(n.node)
	if r.Kind != yaml.MappingNode {
		return nil, &FieldTypeError{Path: n.Path(), Want: "mapping", Got: kindName(r)}
	}

	entries := make([]Entry, 0, len(r.Content)/2)
	for i := 0; i+1 < len(r.Content); i += 2 {
		key := r.Content[i].Value
		entries = append(entries, Entry{
			Key:   key,
			Value: Node{node: r.Content[i+1], path: joinPath(n.path, key)},
		})
	}

	return entries, nil
}

// Items returns the sequence items in order. A missing or null node has no items.
func (n Node) Items() ([]Node, error) {
	if !n.Exists() {
		return nil, nil
	}

	r := resolve(n.node)
	if r.Kind != yaml.SequenceNode {
		return nil, &FieldTypeError{Path: n.Path(), Want: "sequence", Got: kindName(r)}
	}

	items := make([]Node, 0, len(r.Content))
	for i, item := range r.Content {
		items = append(items, Node{node: item, path: fmt.Sprintf("%s[%d]", n.path, i)})
	}

	return items, nil
}

// Text returns a required scalar as text. Any non-null scalar is accepted so
// that unquoted YAML dates and numeric keys read back verbatim.
func (n Node) Text() (string, error) {
	r, err := n.scalar()
	if err != nil {
		return "", err
	}
	return r.Value, nil
}

// OptionalText is Text for a field that may be absent.
func (n Node) OptionalText() (string, bool, error) {
	if !n.Exists() {
		return "", false, nil
	}
	s, err := n.Text()
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// StrictText returns a required scalar that must be a YAML string.
// Credentials use it so that a number typed by mistake is reported.
func (n Node) StrictText() (string, error) {
	r, err := n.scalar()
	if err != nil {
		return "", err
	}
	if r.Tag != "!!str" {
		return "", &FieldTypeError{Path: n.Path(), Want: "string", Got: kindName(r)}
	}
	return r.Value, nil
}

// OptionalStrictText is StrictText for a field that may be absent.
func (n Node) OptionalStrictText() (string, bool, error) {
	if !n.Exists() {
		return "", false, nil
	}
	s, err := n.StrictText()
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// Decimal returns a required number.
func (n Node) Decimal() (decimal.Decimal, error) {
	r, err := n.scalar()
	if err != nil {
		return decimal.Zero, err
	}
	if r.Tag != "!!int" && r.Tag != "!!float" {
		return decimal.Zero, &FieldTypeError{Path: n.Path(), Want: "number", Got: kindName(r)}
	}

	d, err := decimal.NewFromString(r.Value)
	if err != nil {
		return decimal.Zero, &FieldTypeError{Path: n.Path(), Want: "number", Got: r.Value}
	}

	return d, nil
}

// OptionalDecimal is Decimal for a field that may be absent.
// Absence is reported through NullDecimal.Valid.
func (n Node) OptionalDecimal() (decimal.NullDecimal, error) {
	if !n.Exists() {
		return decimal.NullDecimal{}, nil
	}
	d, err := n.Decimal()
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// Int returns a required integer.
func (n Node) Int() (int64, error) {
	r, err := n.scalar()
	if err != nil {
		return 0, err
	}
	if r.Tag != "!!int" {
		return 0, &FieldTypeError{Path: n.Path(), Want: "integer", Got: kindName(r)}
	}

	var v int64
	if err := r.Decode(&v); err != nil {
		return 0, &FieldTypeError{Path: n.Path(), Want: "integer", Got: r.Value}
	}

	return v, nil
}

// Seconds reads an integer count of seconds that fits in a time.Duration.
func (n Node) Seconds() (time.Duration, error) {
	v, err := n.Int()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64/int64(time.Second) || v < math.MinInt64/int64(time.Second) {
		return 0, &FieldTypeError{Path: n.Path(), Want: "seconds within range", Got: strconv.FormatInt(v, 10)}
	}
	return time.Duration(v) * time.Second, nil
}

// Dump renders the node as single-line flow YAML for diagnostics.
func (n Node) Dump() string {
	if !n.Exists() {
		return "null"
	}

	out, err := yaml.Marshal(flowCopy(n.node))
	if err != nil {
		return fmt.Sprintf("<%s>", n.Path())
	}

	return strings.TrimSpace(string(out))
}

// flowCopy copies the subtree with aliases inlined and source styles dropped,
// so the shared tree is left untouched.
func flowCopy(n *yaml.Node) *yaml.Node {
	r := resolve(n)
	cp := &yaml.Node{Kind: r.Kind, Tag: r.Tag, Value: r.Value}
	if r.Kind == yaml.MappingNode || r.Kind == yaml.SequenceNode {
		cp.Style = yaml.FlowStyle
		cp.Content = make([]*yaml.Node, 0, len(r.Content))
		for _, c := range r.Content {
			cp.Content = append(cp.Content, flowCopy(c))
		}
	}
	return cp
}

func (n Node) scalar() (*yaml.Node, error) {
	if !n.Exists() {
		return nil, &MissingFieldError{Path: n.Path()}
	}

	r := resolve(n.node)
	if r.Kind != yaml.ScalarNode {
		return nil, &FieldTypeError{Path: n.Path(), Want: "scalar", Got: kindName(r)}
	}

	return r, nil
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return strings.TrimPrefix(n.Tag, "!!")
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
