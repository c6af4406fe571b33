// file: internal/preview/overrides_test.go
// version: 1.0.0
// guid: 57c0b4e2-6d8e-4f76-9a42-1a3c7c9b5e08

package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrideKeys(t *testing.T) {
	cat := loadCatalog(t)
	s := sel(0, 0, 1)

	assert.Equal(t, "William PennNo Cross, No Crown", s.DocumentKey(cat))
	assert.Equal(t, "William PennNo Cross, No Crownmodernized", s.CoverKey(cat))
	assert.Equal(t, s.CoverKey(cat), s.Key(cat, FieldBlurb))
	assert.Equal(t, s.DocumentKey(cat), s.Key(cat, FieldCSS))
	assert.Equal(t, s.DocumentKey(cat), s.Key(cat, FieldHTML))

	unset := sel(Unset, Unset, Unset)
	assert.Equal(t, NoneKey, unset.DocumentKey(cat))
	assert.Equal(t, NoneKey, unset.CoverKey(cat))
}

func TestSetOverride_RoundTripAndScope(t *testing.T) {
	cat := loadCatalog(t)
	s := Default()

	s = mustReduce(t, cat, s,
		SetOverride(FieldBlurb, "A new blurb"),
		SetOverride(FieldCSS, ".spine { color: red; }"),
	)
	props, ok := Derive(cat, s, DefaultViewport)
	require.True(t, ok)
	assert.Equal(t, "A new blurb", props.Blurb)
	assert.Equal(t, ".spine { color: red; }", props.CustomCSS)

	// blurbs follow the cover, css the document
	s = mustReduce(t, cat, s, Change(LevelEdition, Forward))
	props, _ = Derive(cat, s, DefaultViewport)
	assert.Equal(t, "A discourse on the nature and discipline of the holy cross of Christ.", props.Blurb)
	assert.Equal(t, ".spine { color: red; }", props.CustomCSS)

	s = mustReduce(t, cat, s, Change(LevelEdition, Backward))
	props, _ = Derive(cat, s, DefaultViewport)
	assert.Equal(t, "A new blurb", props.Blurb)
}

func TestSetOverride_EmptyStringIsAnOverride(t *testing.T) {
	cat := loadCatalog(t)
	s := mustReduce(t, cat, Default(), SetOverride(FieldBlurb, ""))

	props, ok := Derive(cat, s, DefaultViewport)
	require.True(t, ok)
	assert.Equal(t, "", props.Blurb)
}

func TestClearOverrides(t *testing.T) {
	cat := loadCatalog(t)
	s := mustReduce(t, cat, Default(),
		SetOverride(FieldBlurb, "x"),
		SetOverride(FieldHTML, "<b>x</b>"),
	)
	require.Equal(t, 2, s.Overrides.Len())

	a, ok := KeyAction("esc")
	require.True(t, ok)
	s = mustReduce(t, cat, s, a)
	assert.Equal(t, 0, s.Overrides.Len())

	props, _ := Derive(cat, s, DefaultViewport)
	assert.Equal(t, "A discourse on the nature and discipline of the holy cross of Christ.", props.Blurb)
	assert.Equal(t, "", props.CustomHTML)
}

func TestWith_DoesNotTouchReceiver(t *testing.T) {
	o := NewOverrides()
	next := o.With(FieldCSS, "k", "v")

	_, ok := o.Get(FieldCSS, "k")
	assert.False(t, ok)
	text, ok := next.Get(FieldCSS, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", text)

	var zero Overrides
	assert.Equal(t, 1, zero.With(FieldBlurb, "k", "v").Len())
}

func TestResolve_Fallbacks(t *testing.T) {
	cat := loadCatalog(t)
	o := NewOverrides()

	tests := []struct {
		name  string
		sel   Selection
		field Field
		want  string
	}{
		{"document description", sel(0, 0, 0), FieldBlurb, "A discourse on the nature and discipline of the holy cross of Christ."},
		{"friend description", sel(0, 1, 0), FieldBlurb, "Founder of Pennsylvania and early Quaker writer."},
		{"placeholder", sel(2, 0, 0), FieldBlurb, PlaceholderBlurb},
		{"nothing selected", sel(Unset, Unset, Unset), FieldBlurb, PlaceholderBlurb},
		{"catalog css", sel(0, 1, 0), FieldCSS, ".front { color: navy; }"},
		{"catalog html", sel(1, 0, 1), FieldHTML, `<p class="journal">Journal</p>`},
		{"no css", sel(1, 0, 0), FieldCSS, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.Resolve(cat, tt.sel, tt.field))
		})
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("html")
	require.NoError(t, err)
	assert.Equal(t, FieldHTML, f)

	_, err = ParseField("title")
	assert.ErrorIs(t, err, ErrUnknownField)
}
