package svgstyle

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const laserStyle = "fill:none;stroke:#ff0000;stroke-opacity:1;" +
	"stroke-width:0.07559055;stroke-miterlimit:4;stroke-dasharray:none"

func writeSVG(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.svg")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// checkWellFormed reparses the rewritten document with the stdlib decoder.
func checkWellFormed(t *testing.T, doc string) {
	t.Helper()
	decoder := xml.NewDecoder(bytes.NewReader([]byte(doc)))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("rewritten document is not well formed: %v\n%s", err, doc)
		}
	}
}

func TestRestyleMatchesExactSignatureOnly(t *testing.T) {
	path := writeSVG(t, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <path d="M0 0L10 10" style="stroke:#000000;fill:none"/>
  <path d="M0 0L20 20" style="stroke:#ff0000;fill:none"/>
  <path d="M0 0L30 30" style="stroke:#000000; fill:none"/>
  <path d="M0 0L40 40" style="STROKE:#000000;FILL:NONE"/>
</svg>
`)

	n, err := Restyle(path, DefaultStroke)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Restyle rewrote %d paths, want 1", n)
	}

	got := readFile(t, path)
	checkWellFormed(t, got)
	if !strings.Contains(got, `style="`+laserStyle+`"`) {
		t.Errorf("output does not carry the laser style:\n%s", got)
	}
	for _, untouched := range []string{
		`style="stroke:#ff0000;fill:none"`,
		`style="stroke:#000000; fill:none"`,
		`style="STROKE:#000000;FILL:NONE"`,
	} {
		if !strings.Contains(got, untouched) {
			t.Errorf("near-miss style %s was touched:\n%s", untouched, got)
		}
	}
	if strings.Contains(got, `"`+BlackOutline+`"`) {
		t.Errorf("black outline style survived the rewrite:\n%s", got)
	}
}

func TestRestylePrefixedNamespace(t *testing.T) {
	path := writeSVG(t, `<svg:svg xmlns:svg="http://www.w3.org/2000/svg">
  <svg:g>
    <svg:path d="M0 0L10 10" style="stroke:#000000;fill:none"/>
  </svg:g>
</svg:svg>
`)

	n, err := Restyle(path, DefaultStroke)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Restyle rewrote %d paths, want 1", n)
	}

	got := readFile(t, path)
	checkWellFormed(t, got)
	if !strings.Contains(got, "<svg:path") {
		t.Errorf("element prefix was not preserved:\n%s", got)
	}
	if !strings.Contains(got, laserStyle) {
		t.Errorf("prefixed path was not restyled:\n%s", got)
	}
}

func TestRestyleIgnoresForeignNamespaces(t *testing.T) {
	path := writeSVG(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <metadata xmlns="http://example.com/cad">
    <path style="stroke:#000000;fill:none"/>
  </metadata>
</svg>
`)

	n, err := Restyle(path, DefaultStroke)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Restyle rewrote %d paths outside the SVG namespace, want 0", n)
	}
	got := readFile(t, path)
	if !strings.Contains(got, BlackOutline) {
		t.Errorf("foreign-namespace path was touched:\n%s", got)
	}
}

func TestRestyleNoNamespaceNoMatch(t *testing.T) {
	path := writeSVG(t, `<svg><path style="stroke:#000000;fill:none"/></svg>`)

	n, err := Restyle(path, DefaultStroke)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Restyle rewrote %d unnamespaced paths, want 0", n)
	}
}

func TestRestyleIdempotent(t *testing.T) {
	path := writeSVG(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <path d="M0 0L10 10" style="stroke:#000000;fill:none"/>
</svg>
`)

	if _, err := Restyle(path, DefaultStroke); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, path)

	n, err := Restyle(path, DefaultStroke)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second Restyle rewrote %d paths, want 0", n)
	}
	if second := readFile(t, path); second != first {
		t.Errorf("second Restyle changed the file:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRestyleNoMatchesStillWrites(t *testing.T) {
	path := writeSVG(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <rect width="10" height="10"/>
</svg>
`)

	n, err := Restyle(path, DefaultStroke)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("Restyle rewrote %d paths, want 0", n)
	}
	checkWellFormed(t, readFile(t, path))
}

func TestRestyleCustomStroke(t *testing.T) {
	path := writeSVG(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <path style="stroke:#000000;fill:none"/>
</svg>
`)

	if _, err := Restyle(path, Stroke{Color: "#0000ff", Width: 0.5}); err != nil {
		t.Fatal(err)
	}
	got := readFile(t, path)
	want := "fill:none;stroke:#0000ff;stroke-opacity:1;stroke-width:0.5;" +
		"stroke-miterlimit:4;stroke-dasharray:none"
	if !strings.Contains(got, want) {
		t.Errorf("custom stroke missing from output:\n%s", got)
	}
}

func TestRestyleMissingFile(t *testing.T) {
	if _, err := Restyle(filepath.Join(t.TempDir(), "missing.svg"), DefaultStroke); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRestyleMalformedXML(t *testing.T) {
	path := writeSVG(t, `<svg xmlns="http://www.w3.org/2000/svg"><path`)
	if _, err := Restyle(path, DefaultStroke); err == nil {
		t.Fatal("expected a parse error for malformed XML")
	}
}

func TestStrokeStyleFormatsWidth(t *testing.T) {
	got := Stroke{Color: "#ff0000", Width: 0.07559055}.style()
	if got != laserStyle {
		t.Errorf("style() = %q, want %q", got, laserStyle)
	}
}
