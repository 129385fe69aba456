package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <files...>",
	Short: "Upload résumés (.pdf, .docx, .txt) into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	docs, err := a.Service.UploadPaths(cmd.Context(), args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, d := range docs {
		note := ""
		if d.Text == "" {
			note = " (no text extracted)"
		}
		fmt.Fprintf(out, "  + %s%s\n", d.Name, note)
	}
	fmt.Fprintf(out, "\nStored %d resume(s).\n", len(docs))
	return nil
}
