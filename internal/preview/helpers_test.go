// file: internal/preview/helpers_test.go
// version: 1.0.0
// guid: 9f5d3a51-6a44-4d7e-8a4e-0f3b41d1a0c2

package preview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdfalk/cover-preview/internal/catalog"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("../catalog/testdata/catalog.yaml")
	require.NoError(t, err)
	return cat
}

func sel(f, d, e int) Selection {
	return Selection{FriendIndex: f, DocIndex: d, EdIndex: e}
}

func mustReduce(t *testing.T, cat *catalog.Catalog, s State, actions ...Action) State {
	t.Helper()
	var err error
	for _, a := range actions {
		s, err = Reduce(cat, s, a)
		require.NoError(t, err)
	}
	return s
}
