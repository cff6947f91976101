//go:build !integration

package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aiAutomate/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	variants, err := DefaultCatalog()
	require.NoError(t, err)

	perAudience := map[domain.IntentType]int{}
	for _, v := range variants {
		perAudience[v.Audience]++
		assert.NotEmpty(t, v.Copy[domain.LocaleEN].Headline, v.ID)
		assert.NotEmpty(t, v.Copy[domain.LocaleNL].Headline, v.ID)
	}
	assert.GreaterOrEqual(t, perAudience[domain.IntentStartup], 2)
	assert.GreaterOrEqual(t, perAudience[domain.IntentSME], 2)
	assert.GreaterOrEqual(t, perAudience[domain.IntentUniversal], 1)
}

func TestLoadCatalog_RejectsInvalidEntry(t *testing.T) {
	src := `
variants:
  - id: broken
    audience: enterprise
    copy:
      en: {headline: x, subheadline: y, cta: z}
`
	_, err := LoadCatalog(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	src := `
variants:
  - id: only
    audience: sme
    copy:
      en: {headline: Hello, subheadline: World, cta: Go}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	variants, err := LoadCatalogFile(path)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, "only", variants[0].ID)
	assert.Equal(t, "Hello", variants[0].CopyFor(domain.LocaleNL).Headline)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
