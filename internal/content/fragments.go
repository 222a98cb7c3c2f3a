package content

import (
	"io/fs"
	"os"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/frontmatter"
)

// Fragment is a hand-written page body with optional heading overrides.
type Fragment struct {
	Title string `yaml:"title"`
	Lead  string `yaml:"lead"`
	Body  []byte `yaml:"-"`
}

// Fragments reads optional <name>.md page bodies from a file system.
type Fragments struct {
	fsys fs.FS
}

// NewFragments returns a reader rooted at dir. An empty dir reads nothing.
func NewFragments(dir string) Fragments {
	if dir == "" {
		return Fragments{}
	}
	return Fragments{fsys: os.DirFS(dir)}
}

// NewFragmentsFS returns a reader over fsys, such as an embedded tree.
func NewFragmentsFS(fsys fs.FS) Fragments {
	return Fragments{fsys: fsys}
}

// Read returns the fragment for the page name. ok is false when no fragment
// file exists.
func (f Fragments) Read(name string) (frag Fragment, ok bool, err error) {
	if f.fsys == nil {
		return Fragment{}, false, nil
	}
	path := name + ".md"
	raw, err := fs.ReadFile(f.fsys, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Fragment{}, false, nil
		}
		return Fragment{}, false, errors.WrapError(err, errors.CategoryFileSystem, "read page fragment").
			Fatal().WithContext("path", path).Build()
	}

	fm, body, _, err := frontmatter.Split(raw)
	if err == nil {
		err = frontmatter.Decode(fm, &frag)
	}
	if err != nil {
		return Fragment{}, false, errors.WrapError(err, errors.CategoryValidation, "invalid fragment frontmatter").
			Fatal().WithContext("path", path).Build()
	}
	frag.Body = body
	return frag, true, nil
}
