package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var answerJSON bool

var answerCmd = &cobra.Command{
	Use:   "answer [url] [question]",
	Short: "Answer a question about a YouTube video",
	Long: `Answers a question about a YouTube video from its transcript.

The answer is grounded in the video content only: if the transcript does
not cover the question, the assistant says it doesn't know rather than
guessing. The first question about a video builds its index and takes
longer; later questions reuse it.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnswer,
}

func init() {
	answerCmd.Flags().BoolVar(&answerJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if err := probeVideo(cmd, args[0]); err != nil {
		return err
	}

	answer, err := assistantService.Answer(cmd.Context(), args[0], args[1])
	if err != nil {
		return humanize(err)
	}

	if answerJSON {
		return outputAnswerJSON(cmd, answer.VideoID, answer.Question, answer.Text, answer.FromCache)
	}

	cmd.Println(answer.Text)
	return nil
}

func outputAnswerJSON(cmd *cobra.Command, videoID, question, text string, fromCache bool) error {
	data, err := json.MarshalIndent(struct {
		VideoID   string `json:"video_id"`
		Question  string `json:"question,omitempty"`
		Text      string `json:"text"`
		FromCache bool   `json:"from_cache"`
	}{videoID, question, text, fromCache}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
