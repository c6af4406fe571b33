// file: internal/preview/startup_test.go
// version: 1.0.0
// guid: 7a3e8b0c-2f4d-4c1b-bf7e-93c4d1e5a2f6

package preview

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Defaults(t *testing.T) {
	cat := loadCatalog(t)

	s, err := Resolve(cat, nil, url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestResolve_ThreeDCapture(t *testing.T) {
	cat := loadCatalog(t)

	s, err := Resolve(cat, nil, url.Values{"capture": {"threeD"}})
	require.NoError(t, err)
	assert.Equal(t, CaptureThreeD, s.Capturing)
	assert.Equal(t, Mode3D, s.Mode)
	assert.Equal(t, ScaleOne, s.Scale)
	assert.Equal(t, BookSizeMedium, s.BookSize)

	props, ok := Derive(cat, s, DefaultViewport)
	require.True(t, ok)
	assert.Equal(t, 2.0, props.Scaler)
	assert.Equal(t, "2x", props.Scope)
}

func TestResolve_CapturePresets(t *testing.T) {
	cat := loadCatalog(t)
	snapshot := []byte(`{"mode":"pdf","scale":"1-4"}`)

	for _, capture := range []string{"ebook", "audio"} {
		s, err := Resolve(cat, snapshot, url.Values{"capture": {capture}})
		require.NoError(t, err)
		assert.Equal(t, Capture(capture), s.Capturing)
		assert.Equal(t, ModeEbook, s.Mode)
		assert.Equal(t, ScaleOne, s.Scale)
	}

	s, err := Resolve(cat, snapshot, url.Values{"capture": {"poster"}})
	require.NoError(t, err)
	assert.Equal(t, CaptureNone, s.Capturing)
	assert.Equal(t, ModePDF, s.Mode)
	assert.Equal(t, ScaleQuarter, s.Scale)
}

func TestResolve_PathWinsOverSnapshot(t *testing.T) {
	cat := loadCatalog(t)
	snapshot := []byte(`{"friendIndex":2,"docIndex":1,"edIndex":1}`)

	s, err := Resolve(cat, snapshot, url.Values{"path": {"en/george-fox/journal/modernized"}})
	require.NoError(t, err)
	assert.Equal(t, sel(1, 0, 1), s.Selection)
}

func TestResolve_UnknownPath(t *testing.T) {
	cat := loadCatalog(t)

	_, err := Resolve(cat, nil, url.Values{"path": {"nonexistent"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(cat, nil, url.Values{"path": {""}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestore_Overlay(t *testing.T) {
	s, err := Restore([]byte(`{"scale":"1-2","showGuides":true,"customBlurbs":{"k":"v"}}`))
	require.NoError(t, err)

	want := Default()
	want.Scale = ScaleHalf
	want.ShowGuides = true
	want.Blurbs = map[string]string{"k": "v"}
	assert.Equal(t, want, s)
}

func TestRestore_UnknownEnumsRevert(t *testing.T) {
	s, err := Restore([]byte(`{"mode":"hologram","scale":"2","bookSize":"xxl","perspective":"top","capturing":"video"}`))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestRestore_Malformed(t *testing.T) {
	cases := [][]byte{
		[]byte(`{not json`),
		[]byte(`{"fauxVol":7}`),
		[]byte(`{"friendIndex":"zero"}`),
		[]byte(`[]`),
	}
	for _, data := range cases {
		s, err := Restore(data)
		assert.Error(t, err, string(data))
		assert.Equal(t, Default(), s, string(data))
	}

	cat := loadCatalog(t)
	s, err := Resolve(cat, []byte(`{not json`), url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	cat := loadCatalog(t)
	s := mustReduce(t, cat, Default(),
		Change(LevelCover, Backward),
		SetOverride(FieldBlurb, "b"),
		SetOverride(FieldCSS, ""),
		Simple(ActionCycleFauxVol),
		Simple(ActionToggleCode),
		Simple(ActionSpin),
	)
	s = ApplyCapture(s, CaptureAudio)

	data, err := Snapshot(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"customBlurbs"`)
	assert.Contains(t, string(data), `"friendIndex":2`)

	restored, err := Restore(data)
	require.NoError(t, err)
	assert.Equal(t, s, restored)
}

func TestSnapshot_NullEncodings(t *testing.T) {
	data, err := Snapshot(Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fauxVol":null`)
	assert.Contains(t, string(data), `"capturing":null`)
}
