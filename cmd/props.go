// file: cmd/props.go
// version: 1.0.0
// guid: c28e4f71-9a0d-4b35-86e2-5f1a7c3d9e04

package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jdfalk/cover-preview/internal/catalog"
	"github.com/jdfalk/cover-preview/internal/preview"
)

type propsOutput struct {
	State preview.State      `json:"state"`
	Props preview.CoverProps `json:"props"`
}

// propsCmd represents the props command
var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "Print the derived cover props for one edition",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		vp, err := viewportFromFlags(cmd)
		if err != nil {
			return err
		}
		out, err := deriveProps(cat, queryFromFlags(cmd), vp)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func deriveProps(cat *catalog.Catalog, query url.Values, vp preview.Viewport) (propsOutput, error) {
	state, err := preview.ApplyQuery(cat, preview.Default(), query)
	if err != nil {
		return propsOutput{}, err
	}
	props, ok := preview.Derive(cat, state, vp)
	if !ok {
		return propsOutput{}, fmt.Errorf("nothing to render: %w", preview.ErrNotFound)
	}
	return propsOutput{State: state, Props: props}, nil
}

// viewportFromFlags falls back to the configured viewport for unset sizes.
func viewportFromFlags(cmd *cobra.Command) (preview.Viewport, error) {
	vp := configuredViewport()
	if w, _ := cmd.Flags().GetInt("width"); w != 0 {
		vp.Width = w
	}
	if h, _ := cmd.Flags().GetInt("height"); h != 0 {
		vp.Height = h
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return vp, fmt.Errorf("viewport must be positive, got %dx%d", vp.Width, vp.Height)
	}
	return vp, nil
}

func init() {
	propsCmd.Flags().String("path", "", "edition path (default: first edition)")
	propsCmd.Flags().String("capture", "", "screenshot preset: ebook, audio or threeD")
	propsCmd.Flags().Int("width", 0, "viewport width in pixels")
	propsCmd.Flags().Int("height", 0, "viewport height in pixels")
}
