package internal

import (
	"slices"
	"testing"
)

func TestLoadPasswordsFromFile(t *testing.T) {
	t.Parallel()
	path := writeTempFile(t, t.TempDir(), "passwords.txt",
		[]byte("hunter2\n\n  spaced  \nhunter2\n"))

	got, err := LoadPasswordsFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Blank lines dropped, whitespace trimmed; dedup happens later.
	want := []string{"hunter2", "spaced", "hunter2"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProcessPasswords(t *testing.T) {
	// WHY: The merged list carries the defaults plus every explicit password
	// exactly once, with the empty password (unencrypted case) tried first.
	t.Parallel()
	path := writeTempFile(t, t.TempDir(), "passwords.txt", []byte("filepass\nchangeit\n"))

	got, err := ProcessPasswords([]string{"cli-pass", "changeit"}, path)
	if err != nil {
		t.Fatal(err)
	}

	if got[0] != "" {
		t.Errorf("first password = %q, want the empty default", got[0])
	}
	for _, want := range []string{"cli-pass", "filepass", "changeit", ""} {
		if !slices.Contains(got, want) {
			t.Errorf("merged list missing %q: %v", want, got)
		}
	}
	seen := map[string]bool{}
	for _, p := range got {
		if seen[p] {
			t.Errorf("duplicate %q in %v", p, got)
		}
		seen[p] = true
	}
}

func TestProcessPasswordsMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := ProcessPasswords(nil, t.TempDir()+"/absent.txt"); err == nil {
		t.Error("missing password file did not error")
	}
}
