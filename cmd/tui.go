// file: cmd/tui.go
// version: 1.0.0
// guid: 7e5a2c90-3b18-4d6f-a9c4-1f8e0b7d2a36

package cmd

import (
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jdfalk/cover-preview/internal/database"
	"github.com/jdfalk/cover-preview/internal/preview"
	"github.com/jdfalk/cover-preview/internal/session"
	"github.com/jdfalk/cover-preview/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Preview covers in the terminal",
	Long: `Open an interactive terminal preview. Navigation keys match the web
preview; the state is saved under --session when you quit and restored the
next time the same session is opened.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if err := openStore(); err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, database.CloseStore()) }()

		var program *tea.Program
		mgr := newManager(cat, nil, func(v session.View) {
			if program != nil {
				go program.Send(tui.StateMsg(v))
			}
		})
		defer func() { err = multierr.Append(err, mgr.Close()) }()

		id, _ := cmd.Flags().GetString("session")
		view, err := mgr.Open(id, queryFromFlags(cmd))
		if err != nil {
			return fmt.Errorf("open preview: %w", err)
		}

		program = tea.NewProgram(tui.New(mgr, view, zap.L()), tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

// queryFromFlags turns --capture and --path into the URL parameters the
// web preview is opened with.
func queryFromFlags(cmd *cobra.Command) url.Values {
	q := url.Values{}
	if capture, _ := cmd.Flags().GetString("capture"); capture != "" {
		q.Set(preview.ParamCapture, capture)
	}
	if cmd.Flags().Changed("path") {
		path, _ := cmd.Flags().GetString("path")
		q.Set(preview.ParamPath, path)
	}
	return q
}

func init() {
	tuiCmd.Flags().String("session", "tui", "session ID the state is saved under")
	tuiCmd.Flags().String("capture", "", "screenshot preset: ebook, audio or threeD")
	tuiCmd.Flags().String("path", "", "edition path to open")
}
