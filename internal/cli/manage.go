package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"resumematch/internal/domain"
	"resumematch/internal/store/sqlstore"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored résumés",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored résumé and its file",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove stored résumés whose file no longer exists",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	docs, err := a.Service.List(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, "No resumes stored.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUPLOADED\tCHARS\tPATH")
	for _, d := range docs {
		uploaded := "-"
		if !d.UploadedAt.IsZero() {
			uploaded = d.UploadedAt.Format(sqlstore.TimeLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.Name, uploaded, len([]rune(d.Text)), d.SourcePath)
	}
	return tw.Flush()
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Service.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("resume %q not found", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	removed, err := a.Service.Clean(cmd.Context())
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}
	out := cmd.OutOrStdout()
	if removed == 0 {
		fmt.Fprintln(out, "Store is already clean.")
		return nil
	}
	fmt.Fprintf(out, "Removed %d resume(s) with missing files.\n", removed)
	return nil
}
