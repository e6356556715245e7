package cli

import "testing"

func TestSetVersion(t *testing.T) {
	defer SetVersion("", "", "")

	SetVersion("v0.3.0", "9f2c1ab", "2026-08-31T10:00:00Z")

	if version != "v0.3.0" {
		t.Errorf("version = %q, want v0.3.0", version)
	}
	if commit != "9f2c1ab" {
		t.Errorf("commit = %q, want 9f2c1ab", commit)
	}
	if date != "2026-08-31T10:00:00Z" {
		t.Errorf("date = %q, want the build timestamp", date)
	}
}

func TestSetVersionOverwrites(t *testing.T) {
	defer SetVersion("", "", "")

	SetVersion("v0.1.0", "aaa", "old")
	SetVersion("v0.2.0", "bbb", "new")

	if version != "v0.2.0" || commit != "bbb" || date != "new" {
		t.Errorf("version info = %q/%q/%q, want the later values", version, commit, date)
	}
}
