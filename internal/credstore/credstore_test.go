package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studyforge/studyforge-client/internal/errors"
	"github.com/studyforge/studyforge-client/internal/types"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "creds.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	id := &types.Identity{ID: "42", DisplayName: "ada", Email: "ada@example.com"}
	if err := s.Save("tok-1", id); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tok, got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tok != "tok-1" || got == nil || got.ID != "42" || got.Email != "ada@example.com" {
		t.Fatalf("round trip mismatch: %q %+v", tok, got)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	tok, id, err := s.Load()
	if err != nil || tok != "" || id != nil {
		t.Fatalf("missing store should be empty: %q %v %v", tok, id, err)
	}
}

func TestFileStore_CorruptedClearedNotFatal(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "creds.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	_, _, loadErr := s.Load()
	if loadErr == nil {
		t.Fatal("expected ParseError for corrupt snapshot")
	}
	pe, ok := loadErr.(*errors.ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", loadErr)
	}
	if pe.Path != path {
		t.Fatalf("ParseError path mismatch: %q", pe.Path)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("corrupt file should have been removed")
	}

	// A second load starts clean.
	tok, id, err := s.Load()
	if err != nil || tok != "" || id != nil {
		t.Fatalf("store not clean after corruption: %q %v %v", tok, id, err)
	}
}

func TestFileStore_Clear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "creds.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Save("tok", &types.Identity{ID: "1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear must be idempotent: %v", err)
	}
	tok, id, err := s.Load()
	if err != nil || tok != "" || id != nil {
		t.Fatalf("store not empty after Clear: %q %v %v", tok, id, err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	if err := s.Save("tok", &types.Identity{ID: "7"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, id, err := s.Load()
	if err != nil || tok != "tok" || id == nil || id.ID != "7" {
		t.Fatalf("unexpected state: %q %v %v", tok, id, err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	tok, id, _ = s.Load()
	if tok != "" || id != nil {
		t.Fatal("store not empty after Clear")
	}
}
