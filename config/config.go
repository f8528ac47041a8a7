// Package config loads the settings document and exposes typed, path-aware
// access to its sections.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	SectionMarkets    = "markets"
	SectionExchanges  = "exchanges"
	SectionMonitor    = "monitor"
	SectionStrategies = "strategies"
)

// Document is the parsed settings tree. It is never modified after Parse.
// JSON documents are valid YAML, so both formats are accepted.
type Document struct {
	root   Node
	source string
}

// Load reads the document at path, expands ${VAR} references from the
// environment and parses the result.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	doc, err := Parse(ExpandEnv(data))
	if err != nil {
		return nil, err
	}
	doc.source = path

	return doc, nil
}

// Parse parses an in-memory document. Env references are not expanded.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	doc := &Document{source: "<memory>"}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		doc.root = Node{node: root.Content[0]}
	}

	if doc.root.Exists() && resolve(doc.root.node).Kind != yaml.MappingNode {
		return nil, &FieldTypeError{Path: "<root>", Want: "mapping", Got: kindName(doc.root.node)}
	}

	return doc, nil
}

// Source returns the file the document was loaded from.
func (d *Document) Source() string {
	return d.source
}

// Section returns the top-level section with the given name.
// A missing section is returned as a node that does not exist.
func (d *Document) Section(name string) Node {
	return d.root.Key(name)
}

// Root returns the document root.
func (d *Document) Root() Node {
	return d.root
}
