// file: cmd/manifest.go
// version: 1.0.0
// guid: 94b1d6e3-2f7c-4a80-b5e9-0c3d8a6f1b27

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/manifest"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write a screenshot manifest covering every edition",
	Long: `Derive the props of every edition under a capture preset and write
them as YAML, with the URL query and screenshot file name of each entry.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		vp, err := viewportFromFlags(cmd)
		if err != nil {
			return err
		}
		capture, _ := cmd.Flags().GetString("capture")
		outPath, _ := cmd.Flags().GetString("out")
		quiet, _ := cmd.Flags().GetBool("quiet")

		var tick func()
		if !quiet {
			bar := progressbar.NewOptions(cat.EditionCount(),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("deriving editions"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			defer bar.Finish()
			tick = func() { _ = bar.Add(1) }
		}

		m, err := manifest.Build(cat, capture, vp, time.Now(), tick)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" && outPath != "-" {
			f, createErr := os.Create(outPath)
			if createErr != nil {
				return fmt.Errorf("create manifest: %w", createErr)
			}
			defer func() { err = multierr.Append(err, f.Close()) }()
			w = f
		}
		if err := manifest.Write(w, m); err != nil {
			return err
		}
		zap.L().Info("manifest written",
			zap.Int("entries", len(m.Entries)),
			zap.String("capture", m.Capture),
			zap.String("out", outPath))
		return nil
	},
}

func init() {
	manifestCmd.Flags().String("capture", "", "screenshot preset: ebook, audio or threeD")
	manifestCmd.Flags().String("out", "-", "output file (- for stdout)")
	manifestCmd.Flags().Bool("quiet", false, "hide the progress bar")
	manifestCmd.Flags().Int("width", 0, "viewport width in pixels")
	manifestCmd.Flags().Int("height", 0, "viewport height in pixels")
}
