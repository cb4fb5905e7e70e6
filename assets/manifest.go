package assets

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

var (
	ErrManifest = errors.New("assets: invalid manifest")
	ErrMissing  = errors.New("assets: missing sprite")
	ErrDecode   = errors.New("assets: decode sprite")
)

// Cells is a sprite footprint in grid cells.
type Cells struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type SpriteSpec struct {
	Name  string `yaml:"name"`
	File  string `yaml:"file"`
	Cells Cells  `yaml:"cells"`
}

// Size returns the sprite size in pixels for the given cell size.
func (s SpriteSpec) Size(cellSize int) (int, int) {
	w, h := s.Cells.W, s.Cells.H
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w * cellSize, h * cellSize
}

type Manifest struct {
	Sprites []SpriteSpec `yaml:"sprites"`
}

// Names returns the sprite names in manifest order.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Sprites))
	for _, s := range m.Sprites {
		names = append(names, s.Name)
	}
	return names
}

// Validate reports every structural problem, not just the first.
func (m Manifest) Validate() error {
	if len(m.Sprites) == 0 {
		return fmt.Errorf("%w: no sprites", ErrManifest)
	}
	var errs []error
	seen := make(map[string]bool, len(m.Sprites))
	for i, s := range m.Sprites {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("%w: sprite %d has no name", ErrManifest, i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("%w: duplicate sprite %q", ErrManifest, s.Name))
		}
		seen[s.Name] = true
		if s.File == "" {
			errs = append(errs, fmt.Errorf("%w: sprite %q has no file", ErrManifest, s.Name))
		}
		if s.Cells.W < 0 || s.Cells.H < 0 {
			errs = append(errs, fmt.Errorf("%w: sprite %q has negative cells", ErrManifest, s.Name))
		}
	}
	return errors.Join(errs...)
}

// LoadSpec reads and decodes one YAML file from fsys.
func LoadSpec[T any](fsys fs.FS, name string) (T, error) {
	var zero T
	data, err := fs.ReadFile(fsys, cleanAssetPath(name))
	if err != nil {
		return zero, fmt.Errorf("assets: load %s: %w", name, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("assets: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

// LoadManifest reads and validates the manifest of an assets root.
func LoadManifest(fsys fs.FS) (Manifest, error) {
	m, err := LoadSpec[Manifest](fsys, ManifestName)
	if err != nil {
		return Manifest{}, err
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
