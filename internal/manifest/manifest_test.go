// file: internal/manifest/manifest_test.go
// version: 1.0.0
// guid: 47c0e3a8-1f9d-4b62-a7e4-8d5c2b9f0e13

package manifest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/preview"
)

var generated = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("../catalog/testdata/catalog.yaml")
	require.NoError(t, err)
	return cat
}

func TestScreenshotName(t *testing.T) {
	assert.Equal(t, "en-george-fox-journal-updated--threed.png",
		ScreenshotName("en/george-fox/journal/updated", preview.CaptureThreeD))
	assert.Equal(t, "es-ambrose-rigge-una-carta-updated--cover.png",
		ScreenshotName("es/ambrose-rigge/una-carta/updated", preview.CaptureNone))
}

func TestBuild_ThreeD(t *testing.T) {
	cat := loadCatalog(t)
	calls := 0
	m, err := Build(cat, "threeD", preview.DefaultViewport, generated, func() { calls++ })
	require.NoError(t, err)

	assert.Equal(t, cat.EditionCount(), len(m.Entries))
	assert.Equal(t, cat.EditionCount(), calls)
	assert.Equal(t, "threeD", m.Capture)

	first := m.Entries[0]
	assert.Equal(t, "en/william-penn/no-cross-no-crown/updated", first.Path)
	assert.Equal(t, "William Penn / No Cross, No Crown / updated", first.Label)
	assert.Equal(t, "?capture=threeD&path=en%2Fwilliam-penn%2Fno-cross-no-crown%2Fupdated", first.Query)
	for _, e := range m.Entries {
		assert.Equal(t, 2.0, e.Props.Scaler, e.Path)
		assert.Equal(t, "2x", e.Props.Scope, e.Path)
		assert.GreaterOrEqual(t, e.Props.Pages, 75, e.Path)
	}
}

func TestBuild_Ebook(t *testing.T) {
	m, err := Build(loadCatalog(t), "ebook", preview.DefaultViewport, generated, nil)
	require.NoError(t, err)
	for _, e := range m.Entries {
		assert.Equal(t, "xl", e.Props.Size, e.Path)
	}
}

func TestBuild_UnknownCapture(t *testing.T) {
	_, err := Build(loadCatalog(t), "polaroid", preview.DefaultViewport, generated, nil)
	assert.ErrorContains(t, err, "unknown capture")
}

func TestWrite(t *testing.T) {
	m, err := Build(loadCatalog(t), "audio", preview.Viewport{Width: 800, Height: 600}, generated, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Contains(t, buf.String(), "screenshot: en-william-penn-no-cross-no-crown-updated--audio.png")
	assert.Contains(t, buf.String(), "isbn: 978-1-64476-001-1")

	var decoded Manifest
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, m.Viewport, decoded.Viewport)
	assert.Len(t, decoded.Entries, len(m.Entries))
	assert.True(t, generated.Equal(decoded.GeneratedAt))
}
