package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jverdier/coursemap/pkg/document"
)

// readDocument loads a graph document from a JSON file without repairing it.
// Commands that need a clean document run document.Sanitize themselves so
// they can report what was fixed.
func readDocument(path string) (document.Document, error) {
	doc, err := document.ReadFile(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument writes a graph document as JSON. When output is empty the
// document is written back to input.
func writeDocument(doc document.Document, input, output string) (string, error) {
	path := output
	if path == "" {
		path = input
	}
	if err := document.WriteFile(doc, path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// parsePosition parses a "x,y" flag value into a canvas position.
func parsePosition(s string) (document.Position, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return document.Position{}, fmt.Errorf("invalid position %q (expected \"x,y\")", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return document.Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return document.Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return document.Position{X: x, Y: y}, nil
}
