package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "lib", "library.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }

	if err := s.Save(ctx, Composition{Name: "hello", Text: "ba", Journal: []byte("v1")}); err != nil {
		t.Fatal(err)
	}
	clock = time.Unix(2000, 0)
	if err := s.Save(ctx, Composition{Name: "hello", Text: "bake", Journal: []byte("v2")}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "hello")
	if err != nil {
		t.Fatal(err)
	}
	want := Composition{
		Name:    "hello",
		Text:    "bake",
		Journal: []byte("v2"),
		Created: time.Unix(1000, 0),
		Updated: time.Unix(2000, 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissing(t *testing.T) {
	s := openStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() = %v, want ErrNotFound", err)
	}
	if err := s.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() = %v, want ErrNotFound", err)
	}
}

func TestSaveEmptyName(t *testing.T) {
	s := openStore(t)
	if err := s.Save(context.Background(), Composition{Text: "ba"}); err == nil {
		t.Error("Save() without a name succeeded")
	}
}

func TestListDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	for i, name := range []string{"a", "b", "c"} {
		s.now = func() time.Time { return time.Unix(int64(100+i), 0) }
		if err := s.Save(ctx, Composition{Name: name, Text: name, Journal: []byte(name)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
		if len(c.Journal) != 0 {
			t.Errorf("List() returned the journal of %q", c.Name)
		}
	}
	if diff := cmp.Diff([]string{"c", "a"}, names); diff != "" {
		t.Errorf("List() names mismatch (-want +got):\n%s", diff)
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, Composition{Name: "kept", Text: "do", Journal: []byte("j")}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, "kept"); err != nil {
		t.Errorf("Get() after reopen = %v", err)
	}
}

func TestSaveWithoutJournal(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	if err := s.Save(ctx, Composition{Name: "x", Text: "x"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "x" || len(got.Journal) != 0 {
		t.Errorf("Get() = %q with journal %q, want text %q and no journal", got.Text, got.Journal, "x")
	}
}
