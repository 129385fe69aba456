package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resumematch/internal/domain"
)

var (
	matchUploads     []string
	matchLimit       int
	matchDownloadDir string
	matchJobFile     string
)

var matchCmd = &cobra.Command{
	Use:   "match [description...]",
	Short: "Rank stored résumés against a job description",
	Long: `Rank every stored résumé against a job description and print the best matches.

The description is taken from the arguments, from --job-file, or from stdin.
Files given with --upload are stored first and take part in the ranking.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringSliceVarP(&matchUploads, "upload", "u", nil, "Résumé files to upload before matching")
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 0, "Number of matches (default from config)")
	matchCmd.Flags().StringVar(&matchDownloadDir, "download", "", "Write the matched résumé files into this directory")
	matchCmd.Flags().StringVar(&matchJobFile, "job-file", "", "Read the job description from a file")
}

func runMatch(cmd *cobra.Command, args []string) error {
	query, err := readJobDescription(cmd.InOrStdin(), args, matchJobFile)
	if err != nil {
		return err
	}

	a, err := getApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	var supplied []domain.Document
	if len(matchUploads) > 0 {
		supplied, err = a.Service.UploadPaths(ctx, matchUploads)
		if err != nil {
			return err
		}
	}

	result, err := a.Service.Match(ctx, query, supplied, matchLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printResult(out, result)

	if matchDownloadDir != "" && len(result.Matches) > 0 {
		if err := os.MkdirAll(matchDownloadDir, 0o755); err != nil {
			return err
		}
		for _, m := range result.Matches {
			_, data, err := a.Service.Download(ctx, m.Name)
			if err != nil {
				fmt.Fprintf(out, "  ! %s: %v\n", m.Name, err)
				continue
			}
			dst := filepath.Join(matchDownloadDir, filepath.Base(m.Name))
			if err := os.WriteFile(dst, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(out, "  saved %s\n", dst)
		}
	}
	return nil
}

func readJobDescription(stdin io.Reader, args []string, jobFile string) (string, error) {
	var text string
	switch {
	case jobFile != "":
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return "", err
		}
		text = string(data)
	case len(args) > 0:
		text = strings.Join(args, " ")
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("job description is empty")
	}
	return text, nil
}

func printResult(w io.Writer, result *domain.MatchResult) {
	if result.CorpusSize == 0 {
		fmt.Fprintln(w, "Warning: no resumes found. Add some with 'resumematch add' first.")
		return
	}
	fmt.Fprintf(w, "Top %d of %d resumes:\n", len(result.Matches), result.CorpusSize)
	for i, m := range result.Matches {
		fmt.Fprintf(w, "%d. %s (%.2f%% match)", i+1, m.Name, m.Percent())
		if m.SourcePath != "" {
			fmt.Fprintf(w, "  %s", m.SourcePath)
		}
		fmt.Fprintln(w)
		if m.Summary != "" {
			fmt.Fprintf(w, "   %s\n", m.Summary)
		}
	}
	if len(result.Supplied) > 0 {
		fmt.Fprintln(w, "\nUploaded Resume Scores:")
		for _, s := range result.Supplied {
			fmt.Fprintf(w, "  %s: %.2f%%\n", s.Name, s.Percent())
		}
	}
}
