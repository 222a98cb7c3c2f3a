// Package content holds the typed content model read once per build: the
// section tree and flat lists from core.json, and the article list.
package content

import "strings"

// Document keys of core.json.
const (
	KeyHomepage        = "Homepage"
	KeySections        = "Sezioni principali"
	KeyRubriche        = "Rubriche fisse"
	KeyApprofondimenti = "Approfondimenti"
	KeyAutori          = "Autori"
	KeyChiSiamo        = "Chi siamo"
	KeyContatti        = "Contatti"
)

// FlatListKeys lists the flat-list document keys in page emission order.
var FlatListKeys = []string{KeyRubriche, KeyApprofondimenti, KeyAutori, KeyChiSiamo, KeyContatti}

const defaultFocus = "Focus del mese"

// Section is a top-level content area with its ordered sub-topics.
type Section struct {
	Name   string
	Topics []string
}

// Tree is the validated content configuration. Section order is the key
// order of the source document.
type Tree struct {
	Homepage  []string
	Sections  []Section
	FlatLists map[string][]string

	// Warnings collects non-fatal shape problems found while loading.
	Warnings []string
}

// NewTree returns an empty tree with every flat list present.
func NewTree() *Tree {
	t := &Tree{FlatLists: make(map[string][]string, len(FlatListKeys))}
	for _, k := range FlatListKeys {
		t.FlatLists[k] = []string{}
	}
	return t
}

// FlatList returns the named list, or an empty slice when absent.
func (t *Tree) FlatList(key string) []string {
	if t == nil || t.FlatLists == nil {
		return nil
	}
	return t.FlatLists[key]
}

// Section looks a section up by its exact name.
func (t *Tree) Section(name string) (Section, bool) {
	for _, s := range t.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Focus returns the first homepage entry mentioning "focus", or the default
// focus heading.
func (t *Tree) Focus() string {
	for _, item := range t.Homepage {
		if strings.Contains(strings.ToLower(item), "focus") {
			return item
		}
	}
	return defaultFocus
}
