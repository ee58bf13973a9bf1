package cli

import (
	"github.com/spf13/cobra"
)

var summarizeJSON bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize [url]",
	Short: "Summarize a YouTube video",
	Long: `Produces a summary of a YouTube video from its transcript.

Uses the same per-video index as the answer command, so summarizing a
video you have already asked about is fast.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if err := probeVideo(cmd, args[0]); err != nil {
		return err
	}

	summary, err := assistantService.Summarize(cmd.Context(), args[0])
	if err != nil {
		return humanize(err)
	}

	if summarizeJSON {
		return outputAnswerJSON(cmd, summary.VideoID, "", summary.Text, summary.FromCache)
	}

	cmd.Println(summary.Text)
	return nil
}
