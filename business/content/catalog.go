package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"aiAutomate/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Variants []catalogEntry `yaml:"variants"`
}

type catalogEntry struct {
	ID       string                        `yaml:"id"`
	Audience string                        `yaml:"audience"`
	Copy     map[string]domain.VariantCopy `yaml:"copy"`
}

// DefaultCatalog returns the bilingual variants shipped with the binary.
func DefaultCatalog() ([]domain.ContentVariant, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}

// LoadCatalogFile reads a catalog from path, or the default one if path is empty.
func LoadCatalogFile(path string) ([]domain.ContentVariant, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

func LoadCatalog(r io.Reader) ([]domain.ContentVariant, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]domain.ContentVariant, 0, len(file.Variants))
	for _, e := range file.Variants {
		v := domain.ContentVariant{
			ID:       e.ID,
			Audience: domain.IntentType(e.Audience),
			Copy:     e.Copy,
		}
		if err := validateVariant(v); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}
