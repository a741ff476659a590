package store

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// Document is the entire persisted state: one blob of folders under one
// fixed storage key.
type Document struct {
	Folders []Folder `json:"folders"`
}

// Folder is a named group of papers. Papers live inside their folder;
// deleting the folder deletes them with it.
type Folder struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Papers []Paper `json:"papers"`
}

// Paper is a captured web resource with an attached notes blob. Notes are
// stored as a markup string and may embed inline base64 images.
type Paper struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Notes string `json:"notes"`
}

func emptyDocument() Document {
	return Document{Folders: []Folder{}}
}

// newID returns a fresh timestamp-ordered id. Folder ids are unique across
// the document and paper ids within their folder; collisions are not
// defended against beyond what ULID monotonicity gives us.
func newID() string {
	return ulid.Make().String()
}

func (d *Document) folder(id string) *Folder {
	for i := range d.Folders {
		if d.Folders[i].ID == id {
			return &d.Folders[i]
		}
	}
	return nil
}

func (f *Folder) paper(id string) *Paper {
	for i := range f.Papers {
		if f.Papers[i].ID == id {
			return &f.Papers[i]
		}
	}
	return nil
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}
