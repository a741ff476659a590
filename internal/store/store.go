// Package store is the persistence layer: a single document of folders
// and papers kept whole under one key of a KV backend. Every operation
// loads the full document, mutates an in-memory copy and writes the full
// document back. Operations are individually whole-document atomic but do
// not compose: two interleaved read-modify-write cycles race and the
// second write wins. That last-write-wins behavior is deliberate and kept.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DataKey is the fixed storage key the whole document lives under.
const DataKey = "synapseData"

// ErrFolderNotFound is returned by AddPaper when the target folder does
// not exist. The update and delete operations deliberately do not signal
// missing entities; they are silent no-ops, matching observed behavior.
var ErrFolderNotFound = errors.New("folder not found")

// Store exposes CRUD over folders and papers.
type Store struct {
	kv KV
}

// New returns a Store over the given backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Initialize makes sure the document exists, writing an empty folder list
// if nothing is stored. Safe to call repeatedly.
func (s *Store) Initialize() error {
	_, ok, err := s.kv.Get(DataKey)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	if ok {
		return nil
	}
	return s.save(emptyDocument())
}

// Load returns the full document, or an empty-folders document if none is
// stored.
func (s *Store) Load() (Document, error) {
	b, ok, err := s.kv.Get(DataKey)
	if err != nil {
		return Document{}, fmt.Errorf("load document: %w", err)
	}
	if !ok {
		return emptyDocument(), nil
	}
	var d Document
	if err := json.Unmarshal(b, &d); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	if d.Folders == nil {
		d.Folders = []Folder{}
	}
	return d, nil
}

func (s *Store) save(d Document) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := s.kv.Put(DataKey, b); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// CreateFolder appends a new folder with an empty paper list and returns
// it. The name is trimmed before storage.
func (s *Store) CreateFolder(name string) (Folder, error) {
	d, err := s.Load()
	if err != nil {
		return Folder{}, err
	}
	f := Folder{
		ID:     newID(),
		Name:   trimName(name),
		Papers: []Paper{},
	}
	d.Folders = append(d.Folders, f)
	if err := s.save(d); err != nil {
		return Folder{}, err
	}
	return f, nil
}

// RenameFolder overwrites the folder's name. No-op if the id is unknown.
func (s *Store) RenameFolder(id, newName string) error {
	d, err := s.Load()
	if err != nil {
		return err
	}
	f := d.folder(id)
	if f == nil {
		return nil
	}
	f.Name = trimName(newName)
	return s.save(d)
}

// DeleteFolder removes the folder and, with it, all its papers. No-op if
// the id is unknown.
func (s *Store) DeleteFolder(id string) error {
	d, err := s.Load()
	if err != nil {
		return err
	}
	kept := d.Folders[:0]
	for _, f := range d.Folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	d.Folders = kept
	return s.save(d)
}

// GetFolder returns the folder and whether it exists.
func (s *Store) GetFolder(id string) (Folder, bool, error) {
	d, err := s.Load()
	if err != nil {
		return Folder{}, false, err
	}
	f := d.folder(id)
	if f == nil {
		return Folder{}, false, nil
	}
	return *f, true, nil
}

// AddPaper appends a new paper with empty notes to the folder and returns
// it. Unlike the other mutations this one fails loudly when the folder is
// missing.
func (s *Store) AddPaper(folderID, title, url string) (Paper, error) {
	d, err := s.Load()
	if err != nil {
		return Paper{}, err
	}
	f := d.folder(folderID)
	if f == nil {
		return Paper{}, ErrFolderNotFound
	}
	p := Paper{
		ID:    newID(),
		Title: title,
		URL:   url,
		Notes: "",
	}
	f.Papers = append(f.Papers, p)
	if err := s.save(d); err != nil {
		return Paper{}, err
	}
	return p, nil
}

// UpdatePaper overwrites the paper's title and url. Silent no-op if the
// folder or paper is missing.
func (s *Store) UpdatePaper(folderID, paperID, title, url string) error {
	d, err := s.Load()
	if err != nil {
		return err
	}
	f := d.folder(folderID)
	if f == nil {
		return nil
	}
	p := f.paper(paperID)
	if p == nil {
		return nil
	}
	p.Title = title
	p.URL = url
	return s.save(d)
}

// DeletePaper removes the paper. No-op if the folder or paper is missing.
func (s *Store) DeletePaper(folderID, paperID string) error {
	d, err := s.Load()
	if err != nil {
		return err
	}
	f := d.folder(folderID)
	if f == nil {
		return nil
	}
	kept := f.Papers[:0]
	for _, p := range f.Papers {
		if p.ID != paperID {
			kept = append(kept, p)
		}
	}
	f.Papers = kept
	return s.save(d)
}

// UpdatePaperNotes overwrites the paper's notes blob. Silent no-op if the
// folder or paper is missing.
func (s *Store) UpdatePaperNotes(folderID, paperID, notes string) error {
	d, err := s.Load()
	if err != nil {
		return err
	}
	f := d.folder(folderID)
	if f == nil {
		return nil
	}
	p := f.paper(paperID)
	if p == nil {
		return nil
	}
	p.Notes = notes
	return s.save(d)
}

// GetPaper returns the paper and whether it exists.
func (s *Store) GetPaper(folderID, paperID string) (Paper, bool, error) {
	f, ok, err := s.GetFolder(folderID)
	if err != nil || !ok {
		return Paper{}, false, err
	}
	p := f.paper(paperID)
	if p == nil {
		return Paper{}, false, nil
	}
	return *p, true, nil
}
