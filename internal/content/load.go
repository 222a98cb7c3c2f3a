package content

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/util/sets"
)

// Load reads and decodes the content document at path.
func Load(path string) (*Tree, error) {
	// #nosec G304 -- path comes from the build configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "read content document").
			Fatal().
			WithContext("path", path).
			Build()
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// Parse decodes a core.json document. The document is read through the YAML
// node API, which accepts JSON and keeps mapping keys in document order.
//
// Shape problems never fail the parse: a missing or wrong-shaped key yields an
// empty collection and a warning on the returned tree. Only a document that
// cannot be parsed at all is an error.
func Parse(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "parse content document").Fatal().Build()
	}

	tree := NewTree()
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		tree.warn("content document is empty")
		return tree, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		tree.warn("content document is not an object; using empty content")
		return tree, nil
	}

	for _, entry := range mappingEntries(root) {
		switch entry.key {
		case KeyHomepage:
			tree.Homepage = tree.stringList(entry.key, entry.value)
		case KeySections:
			tree.Sections = tree.sections(entry.value)
		default:
			if slices.Contains(FlatListKeys, entry.key) {
				tree.FlatLists[entry.key] = tree.stringList(entry.key, entry.value)
			}
		}
	}
	return tree, nil
}

type mappingEntry struct {
	key   string
	value *yaml.Node
}

// mappingEntries flattens a mapping node. A repeated key keeps the position of
// its first occurrence and the value of its last, as JSON object decoding does.
func mappingEntries(n *yaml.Node) []mappingEntry {
	entries := make([]mappingEntry, 0, len(n.Content)/2)
	index := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if at, seen := index[key]; seen {
			entries[at].value = n.Content[i+1]
			continue
		}
		index[key] = len(entries)
		entries = append(entries, mappingEntry{key: key, value: n.Content[i+1]})
	}
	return entries
}

func (t *Tree) sections(n *yaml.Node) []Section {
	if n.Kind != yaml.MappingNode {
		t.warn(fmt.Sprintf("%q is not an object; no sections generated", KeySections))
		return nil
	}
	entries := mappingEntries(n)
	out := make([]Section, 0, len(entries))
	for _, e := range entries {
		topics := t.stringList(KeySections+"."+e.key, e.value)
		out = append(out, Section{Name: e.key, Topics: t.dedupe(e.key, topics)})
	}
	return out
}

// stringList coerces a sequence of scalars to strings. Nulls and nested
// structures are dropped with a warning.
func (t *Tree) stringList(key string, n *yaml.Node) []string {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return []string{}
	}
	if n.Kind != yaml.SequenceNode {
		t.warn(fmt.Sprintf("%q is not an array; treated as empty", key))
		return []string{}
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() == "!!null" {
			t.warn(fmt.Sprintf("%q[%d] is not a string; skipped", key, i))
			continue
		}
		out = append(out, item.Value)
	}
	return out
}

func (t *Tree) dedupe(section string, topics []string) []string {
	seen := sets.New[string]()
	out := topics[:0]
	for _, topic := range topics {
		if !seen.AddNew(topic) {
			t.warn(fmt.Sprintf("section %q lists sub-topic %q more than once; keeping the first", section, topic))
			continue
		}
		out = append(out, topic)
	}
	return out
}

func (t *Tree) warn(msg string) {
	t.Warnings = append(t.Warnings, msg)
}
