package pagetree

// Kind identifies the logical page category of a Record.
type Kind string

const (
	KindHome         Kind = "home"
	KindSectionIndex Kind = "sectionIndex"
	KindSection      Kind = "section"
	KindSectionTopic Kind = "sectionTopic"
	KindFlatList     Kind = "flatList"
	KindArticle      Kind = "article"
	KindStatic       Kind = "static"
)

// Kinds lists every kind in emission order.
var Kinds = []Kind{KindHome, KindSectionIndex, KindFlatList, KindStatic, KindSection, KindSectionTopic, KindArticle}

func (k Kind) String() string { return string(k) }
