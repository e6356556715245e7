package cli

import (
	"path/filepath"
	"testing"

	"github.com/jverdier/coursemap/pkg/document"
)

func TestReadWriteDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.json")

	doc := document.NewFormation("CLI round trip")
	if err := document.WriteFile(doc, input); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	got, err := readDocument(input)
	if err != nil {
		t.Fatalf("readDocument: %v", err)
	}
	if got.Title != "CLI round trip" {
		t.Errorf("title = %q", got.Title)
	}

	// Empty output rewrites the input; explicit output writes elsewhere.
	path, err := writeDocument(got, input, "")
	if err != nil {
		t.Fatalf("writeDocument: %v", err)
	}
	if path != input {
		t.Errorf("path = %q, want input path", path)
	}

	other := filepath.Join(dir, "out.json")
	path, err = writeDocument(got, input, other)
	if err != nil {
		t.Fatalf("writeDocument: %v", err)
	}
	if path != other {
		t.Errorf("path = %q, want %q", path, other)
	}
}

func TestReadDocumentMissing(t *testing.T) {
	if _, err := readDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    document.Position
		wantErr bool
	}{
		{"integers", "120,80", document.Position{X: 120, Y: 80}, false},
		{"floats with spaces", " 1.5 , -2.25 ", document.Position{X: 1.5, Y: -2.25}, false},
		{"missing separator", "120", document.Position{}, true},
		{"not a number", "a,b", document.Position{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePosition(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("", "graphs/course.json", "svg"); got != "graphs/course.svg" {
		t.Errorf("derived path = %q", got)
	}
	if got := outputPath("custom.png", "course.json", "png"); got != "custom.png" {
		t.Errorf("explicit path = %q", got)
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "dot"} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	if err := validateFormat("pdf"); err == nil {
		t.Error("pdf should be rejected")
	}
}
