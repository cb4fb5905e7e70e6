package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadEmbedded(t *testing.T) {
	sprites, err := Load(Embedded(), 30)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []struct {
		name string
		w, h int
	}{
		{"car_red", 30, 30},
		{"car_blue", 30, 30},
		{"truck", 30, 60},
		{"road_straight", 30, 30},
		{"road_turn", 30, 30},
	}
	if len(sprites) != len(want) {
		t.Fatalf("expected %d sprites, got %d", len(want), len(sprites))
	}
	for i, w := range want {
		s := sprites[i]
		if s.Name != w.name {
			t.Fatalf("sprite %d: expected %s, got %s", i, w.name, s.Name)
		}
		if b := s.Image.Bounds(); b.Dx() != w.w || b.Dy() != w.h {
			t.Fatalf("%s: expected %dx%d, got %dx%d", s.Name, w.w, w.h, b.Dx(), b.Dy())
		}
	}
}

func TestLoadErrors(t *testing.T) {
	good := encodePNG(t, 8, 8)
	tests := []struct {
		name string
		fs   fstest.MapFS
		want error
	}{
		{
			name: "missing_manifest",
			fs:   fstest.MapFS{},
			want: os.ErrNotExist,
		},
		{
			name: "empty_manifest",
			fs:   fstest.MapFS{ManifestName: {Data: []byte("sprites: []\n")}},
			want: ErrManifest,
		},
		{
			name: "duplicate_name",
			fs: fstest.MapFS{
				ManifestName: {Data: []byte("sprites:\n  - {name: a, file: a.png}\n  - {name: a, file: a.png}\n")},
				"a.png":      {Data: good},
			},
			want: ErrManifest,
		},
		{
			name: "missing_file",
			fs:   fstest.MapFS{ManifestName: {Data: []byte("sprites:\n  - {name: a, file: a.png}\n")}},
			want: ErrMissing,
		},
		{
			name: "corrupt_png",
			fs: fstest.MapFS{
				ManifestName: {Data: []byte("sprites:\n  - {name: a, file: a.png}\n")},
				"a.png":      {Data: []byte("not a png")},
			},
			want: ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.fs, 30)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadScalesAndDefaultsCells(t *testing.T) {
	fsys := fstest.MapFS{
		ManifestName:    {Data: []byte("sprites:\n  - {name: a, file: assets/sprites/a.png}\n")},
		"sprites/a.png": {Data: encodePNG(t, 64, 64)},
	}
	sprites, err := Load(fsys, 20)
	if err != nil {
		t.Fatal(err)
	}
	img := sprites[0].Image
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("expected 20x20, got %v", img.Bounds())
	}
	if r, _, _, a := img.At(10, 10).RGBA(); r>>8 < 190 || a>>8 < 250 {
		t.Fatalf("unexpected pixel after scale: r=%d a=%d", r>>8, a>>8)
	}
}

func TestCheckCollectsAll(t *testing.T) {
	fsys := fstest.MapFS{
		ManifestName: {Data: []byte("sprites:\n  - {name: a, file: a.png}\n  - {name: b, file: b.png}\n  - {name: c}\n")},
		"b.png":      {Data: []byte("junk")},
	}
	errs := Check(fsys, 30)
	if len(errs) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(errs), errs)
	}
	if len(Check(Embedded(), 30)) != 0 {
		t.Fatalf("embedded assets should be clean")
	}
}

func TestOpen(t *testing.T) {
	fsys, err := Open("")
	if err != nil || fsys != Embedded() {
		t.Fatalf("empty root should be the embedded assets, got %v %v", fsys, err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte("sprites:\n  - {name: x, file: x.png}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "x.png"), encodePNG(t, 30, 30), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if names := m.Names(); len(names) != 1 || names[0] != "x" {
		t.Fatalf("names = %v", names)
	}

	if _, err := Open(filepath.Join(dir, "nope")); err == nil {
		t.Fatalf("expected error for missing root")
	}
	if _, err := Open(filepath.Join(dir, "x.png")); err == nil {
		t.Fatalf("expected error for a file root")
	}
}

func TestCleanAssetPath(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"sprites/a.png":        "sprites/a.png",
		"./sprites/a.png":      "sprites/a.png",
		"assets/sprites/a.png": "sprites/a.png",
	}
	for in, want := range tests {
		if got := cleanAssetPath(in); got != want {
			t.Errorf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "car.png")
	if err := os.WriteFile(target, encodePNG(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected %s, got %s", target, name)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", target)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
