package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"resumematch/internal/domain"
	"resumematch/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [files...]",
	Short: "Interactive matcher; given files are uploaded first",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var supplied []domain.Document
	if len(args) > 0 {
		supplied, err = a.Service.UploadPaths(cmd.Context(), args)
		if err != nil {
			return err
		}
	}
	m := tui.New(a.Service, supplied, a.Config.DownloadDir, a.Config.Ranker.TopK)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
