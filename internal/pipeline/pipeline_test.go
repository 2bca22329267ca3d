package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Raudbjorn/pdq-go/pdq"
)

// writeFixturePNG writes a deterministic textured PNG.
func writeFixturePNG(t *testing.T, path string, w, h, seed int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x*251 + seed) % 256),
				G: uint8((y*179 + seed*7) % 256),
				B: uint8(((x + y) * 113) % 256),
				A: 255,
			})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestScanImages_FiltersAndWalks(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, filepath.Join(dir, "a.png"), 16, 16, 1)
	writeFixturePNG(t, filepath.Join(dir, "cards", "b.png"), 16, 16, 2)
	writeFixturePNG(t, filepath.Join(dir, ".hidden", "c.png"), 16, 16, 3)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 2 {
		t.Fatalf("found %d sources, want 2: %+v", len(sources), sources)
	}
	seen := map[string]bool{}
	for _, s := range sources {
		seen[s.RelPath] = true
		if s.Size <= 0 {
			t.Errorf("%s: size %d", s.RelPath, s.Size)
		}
	}
	if !seen["a.png"] || !seen["cards/b.png"] {
		t.Errorf("unexpected source set: %v", seen)
	}
}

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, filepath.Join(dir, "one.png"), 96, 64, 1)
	writeFixturePNG(t, filepath.Join(dir, "two.png"), 64, 96, 2)
	writeFixturePNG(t, filepath.Join(dir, "sub", "three.png"), 48, 48, 3)

	p := New(Config{InputDir: dir, Workers: 2})
	m, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Entries) != 3 {
		t.Fatalf("entries: got %d, want 3", len(m.Entries))
	}
	if m.Stats.TotalFiles != 3 {
		t.Errorf("total_files: got %d", m.Stats.TotalFiles)
	}

	e, ok := m.Entries["one.png"]
	if !ok {
		t.Fatal("entry one.png missing")
	}
	if e.Width != 96 || e.Height != 64 {
		t.Errorf("dimensions: got %dx%d", e.Width, e.Height)
	}
	if e.Format != "png" {
		t.Errorf("format: got %q", e.Format)
	}
	if len(e.ContentHash) != 16 {
		t.Errorf("content hash: got %q", e.ContentHash)
	}
	if _, err := pdq.FromHex(e.PDQ); err != nil {
		t.Errorf("entry fingerprint not parseable: %v", err)
	}
	if e.Quality < 0 || e.Quality > 100 {
		t.Errorf("quality out of range: %d", e.Quality)
	}
}

func TestPipeline_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, filepath.Join(dir, "img.png"), 80, 60, 5)

	run := func() string {
		m, err := New(Config{InputDir: dir, Workers: 4}).Run()
		if err != nil {
			t.Fatal(err)
		}
		return m.Entries["img.png"].PDQ
	}
	if a, b := run(), run(); a != b {
		t.Errorf("fingerprints differ across runs: %s vs %s", a, b)
	}
}

func TestPipeline_EmptyDir(t *testing.T) {
	if _, err := New(Config{InputDir: t.TempDir()}).Run(); err == nil {
		t.Error("expected error for directory without images")
	}
}

func TestPipeline_CorruptFileReported(t *testing.T) {
	dir := t.TempDir()
	writeFixturePNG(t, filepath.Join(dir, "good.png"), 32, 32, 1)
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := New(Config{InputDir: dir}).Run()
	if err != nil {
		t.Fatalf("partial failure should not fail the run: %v", err)
	}
	if len(m.Entries) != 1 {
		t.Errorf("entries: got %d, want 1", len(m.Entries))
	}
	if _, ok := m.Entries["good.png"]; !ok {
		t.Error("good.png missing from manifest")
	}
}
