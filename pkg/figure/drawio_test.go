package figure

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const twoPageDoc = `<mxfile host="app.diagrams.net">
  <diagram name="Overview" id="a">x</diagram>
  <diagram name="Detail" id="b">y</diagram>
</mxfile>`

func writeDrawio(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDrawioMultiPageFanOut(t *testing.T) {
	dir := t.TempDir()
	src := writeDrawio(t, dir, "diagram.drawio", twoPageDoc)
	outDir := filepath.Join(dir, "figures")

	rec := &recordingRunner{}
	d := NewDrawio("/opt/drawio/drawio")
	d.run = rec.run

	results := d.Convert(context.Background(), NewJob(src, outDir, "png", false))
	if len(results) != 2 {
		t.Fatalf("Convert() returned %d results, want 2", len(results))
	}

	var artifacts []string
	for _, res := range results {
		if !res.OK() {
			t.Errorf("page %d failed: %v", res.Page, res.Err)
		}
		artifacts = append(artifacts, filepath.Base(res.Artifact))
	}
	sort.Strings(artifacts)

	want := []string{"diagram-Detail.png", "diagram-Overview.png"}
	for i := range want {
		if artifacts[i] != want[i] {
			t.Errorf("artifact[%d] = %q, want %q", i, artifacts[i], want[i])
		}
	}

	if rec.count() != 2 {
		t.Errorf("external command executed %d times, want 2", rec.count())
	}
}

func TestDrawioPageIndexMatchesSuffix(t *testing.T) {
	dir := t.TempDir()
	src := writeDrawio(t, dir, "arch.drawio", twoPageDoc)

	rec := &recordingRunner{}
	d := NewDrawio("/opt/drawio/drawio")
	d.run = rec.run

	results := d.Convert(context.Background(), NewJob(src, filepath.Join(dir, "figures"), "svg", false))

	// Page index i must pair with suffix index i regardless of which
	// worker ran the unit.
	for _, res := range results {
		switch res.Page {
		case 0:
			if res.Suffix != "-Overview" {
				t.Errorf("page 0 suffix = %q, want -Overview", res.Suffix)
			}
		case 1:
			if res.Suffix != "-Detail" {
				t.Errorf("page 1 suffix = %q, want -Detail", res.Suffix)
			}
		default:
			t.Errorf("unexpected page index %d", res.Page)
		}
	}

	// Every executed command must carry the page index that matches its
	// --output suffix.
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, argv := range rec.calls {
		var page, output string
		for i, arg := range argv {
			switch arg {
			case "--page-index":
				page = argv[i+1]
			case "--output":
				output = argv[i+1]
			}
		}
		wantSuffix := map[string]string{"0": "-Overview", "1": "-Detail"}[page]
		if filepath.Base(output) != "arch"+wantSuffix+".svg" {
			t.Errorf("page %s exported to %s, want arch%s.svg", page, filepath.Base(output), wantSuffix)
		}
	}
}

func TestDrawioSinglePageEmptySuffix(t *testing.T) {
	dir := t.TempDir()
	src := writeDrawio(t, dir, "single.drawio", `<mxfile><diagram name="Only" id="a">x</diagram></mxfile>`)

	rec := &recordingRunner{}
	d := NewDrawio("/opt/drawio/drawio")
	d.run = rec.run

	results := d.Convert(context.Background(), NewJob(src, filepath.Join(dir, "figures"), "pdf", false))
	if len(results) != 1 {
		t.Fatalf("Convert() returned %d results, want 1", len(results))
	}
	if got := filepath.Base(results[0].Artifact); got != "single.pdf" {
		t.Errorf("artifact = %q, want single.pdf (no suffix)", got)
	}
}

func TestDrawioPageFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	src := writeDrawio(t, dir, "mixed.drawio", twoPageDoc)
	outDir := filepath.Join(dir, "figures")

	// The Overview artifact exists, so its unit is a cache hit; the other
	// unit fails at the renderer. The failure must not affect the hit.
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "mixed-Overview.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &recordingRunner{err: errTest}
	d := NewDrawio("/opt/drawio/drawio")
	d.run = rec.run

	results := d.Convert(context.Background(), NewJob(src, outDir, "png", false))
	if len(results) != 2 {
		t.Fatalf("Convert() returned %d results, want 2", len(results))
	}

	var cached, failed int
	for _, res := range results {
		if res.Cached {
			cached++
		}
		if !res.OK() {
			failed++
		}
	}
	if cached != 1 || failed != 1 {
		t.Errorf("cached = %d, failed = %d; want 1 and 1", cached, failed)
	}
}

func TestDrawioUnreadableSource(t *testing.T) {
	d := NewDrawio("/opt/drawio/drawio")
	d.run = (&recordingRunner{}).run

	results := d.Convert(context.Background(), NewJob("/no/such/file.drawio", t.TempDir(), "png", false))
	if len(results) != 1 || results[0].OK() {
		t.Fatalf("Convert() = %+v, want single failed result", results)
	}
}
