package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
)

var cacheListJSON bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached video indexes",
	Long: `Commands for the local per-video index cache.

Cached indexes never expire. If a video's captions change upstream,
clear its entry to force a rebuild on the next question.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached video indexes",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [video-id]",
	Short: "Remove the cached index for a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheListCmd.Flags().BoolVar(&cacheListJSON, "json", false, "output the listing as JSON")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	infos, err := cacheService.List(cmd.Context())
	if err != nil {
		return humanize(err)
	}

	if cacheListJSON {
		return outputCacheJSON(cmd, infos)
	}

	if len(infos) == 0 {
		cmd.Println("No cached indexes.")
		return nil
	}

	for _, info := range infos {
		cmd.Printf("%s  %4d passages  %s  %s\n",
			info.VideoID, info.ChunkCount, info.EmbeddingModel,
			info.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func outputCacheJSON(cmd *cobra.Command, infos []domain.IndexInfo) error {
	type entry struct {
		VideoID        string `json:"video_id"`
		EmbeddingModel string `json:"embedding_model"`
		Passages       int    `json:"passages"`
		CreatedAt      string `json:"created_at"`
	}
	entries := make([]entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, entry{
			VideoID:        info.VideoID,
			EmbeddingModel: info.EmbeddingModel,
			Passages:       info.ChunkCount,
			CreatedAt:      info.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	if err := cacheService.Clear(cmd.Context(), args[0]); err != nil {
		return humanize(err)
	}

	cmd.Printf("Cleared index for %s\n", args[0])
	return nil
}
