package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "opal.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionsAreDistinct(t *testing.T) {
	store := openTestStore(t)
	a, err := store.NewSession()
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	b, err := store.NewSession()
	if err != nil {
		t.Fatalf("NewSession error: %v", err)
	}
	if a.ID == b.ID || a.ID == "" {
		t.Errorf("session ids not distinct: %q vs %q", a.ID, b.ID)
	}
}

func TestDefinitionRoundTrip(t *testing.T) {
	store := openTestStore(t)
	sess, _ := store.NewSession()

	if err := store.SaveDefinition(sess.ID, "D2", "(expt D 2)"); err != nil {
		t.Fatalf("SaveDefinition error: %v", err)
	}
	got, err := store.Definition("D2")
	if err != nil {
		t.Fatalf("Definition error: %v", err)
	}
	if got != "(expt D 2)" {
		t.Errorf("Definition = %q", got)
	}

	// Redefinition replaces.
	if err := store.SaveDefinition(sess.ID, "D2", "(expt D 3)"); err != nil {
		t.Fatalf("SaveDefinition error: %v", err)
	}
	got, _ = store.Definition("D2")
	if got != "(expt D 3)" {
		t.Errorf("redefined Definition = %q", got)
	}

	if _, err := store.Definition("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing definition err = %v, want ErrNotFound", err)
	}

	defs, err := store.Definitions()
	if err != nil {
		t.Fatalf("Definitions error: %v", err)
	}
	if len(defs) != 1 || defs["D2"] != "(expt D 3)" {
		t.Errorf("Definitions = %v", defs)
	}
}

func TestHistory(t *testing.T) {
	store := openTestStore(t)
	sess, _ := store.NewSession()
	other, _ := store.NewSession()

	for _, in := range []string{"(add 1 2)", "(mul 3 4)", "(expt 2 8)"} {
		if err := store.AppendHistory(sess.ID, in); err != nil {
			t.Fatalf("AppendHistory error: %v", err)
		}
	}
	if err := store.AppendHistory(other.ID, "(sub 1 1)"); err != nil {
		t.Fatalf("AppendHistory error: %v", err)
	}

	got, err := store.History(sess.ID, 2)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	want := []string{"(mul 3 4)", "(expt 2 8)"}
	if len(got) != len(want) {
		t.Fatalf("History = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("History[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
