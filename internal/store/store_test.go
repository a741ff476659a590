package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(NewMemKV())
	require.NoError(t, s.Initialize())
	return s
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("Quantum Computing")
	require.NoError(t, err)

	// A second Initialize must not reset the stored document.
	require.NoError(t, s.Initialize())

	d, err := s.Load()
	require.NoError(t, err)
	require.Len(t, d.Folders, 1)
	assert.Equal(t, f.ID, d.Folders[0].ID)
}

func TestLoadWithoutDocument(t *testing.T) {
	s := New(NewMemKV())

	d, err := s.Load()
	require.NoError(t, err)
	assert.NotNil(t, d.Folders)
	assert.Empty(t, d.Folders)
}

func TestCreateFolderTrimsName(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("  Quantum Computing  ")
	require.NoError(t, err)
	assert.Equal(t, "Quantum Computing", f.Name)
	assert.NotEmpty(t, f.ID)
	assert.Empty(t, f.Papers)

	d, err := s.Load()
	require.NoError(t, err)
	require.Len(t, d.Folders, 1)
	assert.Equal(t, "Quantum Computing", d.Folders[0].Name)
	assert.Empty(t, d.Folders[0].Papers)
}

func TestFolderIDsAreUnique(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		f, err := s.CreateFolder("f")
		require.NoError(t, err)
		assert.False(t, seen[f.ID], "duplicate folder id %q", f.ID)
		seen[f.ID] = true
	}
}

func TestRenameFolder(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("Old")
	require.NoError(t, err)

	require.NoError(t, s.RenameFolder(f.ID, "  New  "))

	got, ok, err := s.GetFolder(f.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New", got.Name)
}

func TestRenameFolderSameNameLeavesDocumentUnchanged(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("Stable")
	require.NoError(t, err)

	before, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.RenameFolder(f.ID, "Stable"))

	after, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRenameFolderUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateFolder("Keep")
	require.NoError(t, err)

	before, err := s.Load()
	require.NoError(t, err)

	require.NoError(t, s.RenameFolder("no-such-id", "Other"))

	after, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteFolderCascades(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("Doomed")
	require.NoError(t, err)
	p, err := s.AddPaper(f.ID, "Paper A", "https://example.com/a")
	require.NoError(t, err)

	require.NoError(t, s.DeleteFolder(f.ID))

	_, ok, err := s.GetFolder(f.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.GetPaper(f.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteFolderUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateFolder("Keep")
	require.NoError(t, err)

	require.NoError(t, s.DeleteFolder("no-such-id"))

	d, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, d.Folders, 1)
}

func TestAddPaperRoundTrip(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("Quantum Computing")
	require.NoError(t, err)

	p, err := s.AddPaper(f.ID, "Paper A", "https://example.com/a")
	require.NoError(t, err)

	got, ok, err := s.GetPaper(f.ID, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Paper A", got.Title)
	assert.Equal(t, "https://example.com/a", got.URL)
	assert.Empty(t, got.Notes)
}

func TestAddPaperMissingFolder(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddPaper("no-such-folder", "Paper A", "https://example.com/a")
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestUpdatePaper(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("f")
	require.NoError(t, err)
	p, err := s.AddPaper(f.ID, "Old", "https://old.example.com")
	require.NoError(t, err)

	require.NoError(t, s.UpdatePaper(f.ID, p.ID, "New", "https://new.example.com"))

	got, ok, err := s.GetPaper(f.ID, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "https://new.example.com", got.URL)
}

func TestUpdatePaperMissingTargetsAreSilent(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("f")
	require.NoError(t, err)
	p, err := s.AddPaper(f.ID, "Keep", "https://example.com")
	require.NoError(t, err)

	before, err := s.Load()
	require.NoError(t, err)

	// Missing paper and missing folder both no-op without error.
	require.NoError(t, s.UpdatePaper(f.ID, "no-such-paper", "x", "y"))
	require.NoError(t, s.UpdatePaper("no-such-folder", p.ID, "x", "y"))
	require.NoError(t, s.UpdatePaperNotes(f.ID, "no-such-paper", "x"))
	require.NoError(t, s.UpdatePaperNotes("no-such-folder", p.ID, "x"))

	after, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdatePaperNotes(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("Quantum Computing")
	require.NoError(t, err)
	p, err := s.AddPaper(f.ID, "Paper A", "https://example.com/a")
	require.NoError(t, err)

	require.NoError(t, s.UpdatePaperNotes(f.ID, p.ID, "hello"))

	got, ok, err := s.GetPaper(f.ID, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Notes)
}

func TestDeletePaper(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("f")
	require.NoError(t, err)
	p1, err := s.AddPaper(f.ID, "One", "https://example.com/1")
	require.NoError(t, err)
	p2, err := s.AddPaper(f.ID, "Two", "https://example.com/2")
	require.NoError(t, err)

	require.NoError(t, s.DeletePaper(f.ID, p1.ID))

	got, ok, err := s.GetFolder(f.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Papers, 1)
	assert.Equal(t, p2.ID, got.Papers[0].ID)

	// Deleting an absent paper is a no-op.
	require.NoError(t, s.DeletePaper(f.ID, p1.ID))
}

func TestPaperOrderIsInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	f, err := s.CreateFolder("f")
	require.NoError(t, err)
	titles := []string{"a", "b", "c", "d"}
	for _, title := range titles {
		_, err := s.AddPaper(f.ID, title, "https://example.com/"+title)
		require.NoError(t, err)
	}

	got, ok, err := s.GetFolder(f.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Papers, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, got.Papers[i].Title)
	}
}

func TestFileKVPersistsAcrossStores(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	s := New(NewFileKV(dir))
	require.NoError(t, s.Initialize())
	f, err := s.CreateFolder("Persisted")
	require.NoError(t, err)

	// A fresh store over the same directory sees the same document.
	s2 := New(NewFileKV(dir))
	got, ok, err := s2.GetFolder(f.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Persisted", got.Name)
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synapse.db")

	kv, err := OpenSQLiteKV(path)
	require.NoError(t, err)
	defer kv.Close()

	s := New(kv)
	require.NoError(t, s.Initialize())

	f, err := s.CreateFolder("Quantum Computing")
	require.NoError(t, err)
	p, err := s.AddPaper(f.ID, "Paper A", "https://example.com/a")
	require.NoError(t, err)
	require.NoError(t, s.UpdatePaperNotes(f.ID, p.ID, "hello"))

	got, ok, err := s.GetPaper(f.ID, p.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Notes)

	// Overwrites land on the same key rather than accumulating rows.
	_, ok, err = kv.Get(DataKey)
	require.NoError(t, err)
	assert.True(t, ok)
}
