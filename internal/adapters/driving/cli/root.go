// Package cli provides the ytassist command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/config/file"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/embedding/huggingface"
	ollamaembed "github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/embedding/ollama"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/index/flat"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/llm/groq"
	ollamallm "github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/llm/ollama"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/storage/sqlite"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/adapters/driven/transcript/youtube"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/domain"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driven"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/ports/driving"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/core/services"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/logger"
	"github.com/AdityaTheDev/YoutubeAssistant/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services the commands run against. Wired by initServices in normal
// operation; tests inject fakes directly.
var (
	assistantService driving.AssistantService
	cacheService     driving.CacheService
	transcriptSource driven.TranscriptSource
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "ytassist",
	Short: "Ask questions about YouTube videos",
	Long: `ytassist answers questions about YouTube videos from their transcripts.

The first question about a video fetches its transcript, translates it to
English if needed, and builds a local vector index. Every later question
against the same video reuses that index, so follow-ups are fast and cost
only the answer generation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose progress output on stderr")
}

// Execute runs the root command. Called once from main.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}

// initServices wires the full pipeline from configuration. Commands that
// talk to services call this from their RunE; the version command does not.
func initServices() error {
	if assistantService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(os.Getenv("YTASSIST_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening index store: %w", err)
	}

	transcripts := youtube.NewClient(youtube.Config{})

	var chunkOpts []chunker.Option
	if size := cfg.GetInt("chunking.chunk_size"); size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(size))
	}
	if overlap := cfg.GetInt("chunking.overlap"); overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(overlap))
	}
	splitter := chunker.New(chunkOpts...)
	factory := flat.NewFactory()

	ingest := services.NewIngestService(transcripts, llm, embedder, splitter, store)
	ingest.SetLanguages(cfg.GetStringSlice("transcript.languages"))
	retriever := services.NewRetriever(embedder, cfg.GetInt("retrieval.top_k"))
	compressor := services.NewCompressionExtractor(llm, cfg.GetInt("retrieval.compression_workers"))

	transcriptSource = transcripts
	assistantService = services.NewAssistant(store, factory, embedder, llm, ingest, retriever, compressor)
	cacheService = services.NewCacheService(store)
	return nil
}

// probeVideo is a cheap existence check before the pipeline runs, so an
// unavailable video fails in one round trip instead of a full scrape.
func probeVideo(cmd *cobra.Command, url string) error {
	if transcriptSource == nil {
		return nil
	}
	if !transcriptSource.Exists(cmd.Context(), url) {
		return humanize(domain.ErrVideoUnavailable)
	}
	return nil
}

// buildLLM selects the completion backend: groq (default) or ollama.
func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	provider := cfg.GetString("llm.provider")
	switch provider {
	case "", "groq":
		apiKey := cfg.GetString("llm.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("GROQ_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("no Groq API key: set llm.api_key in config or GROQ_API_KEY in the environment")
		}
		return groq.NewLLMService(groq.LLMConfig{
			APIKey:            apiKey,
			Model:             cfg.GetString("llm.model"),
			RequestsPerMinute: cfg.GetInt("llm.requests_per_minute"),
		})
	case "ollama":
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want groq or ollama)", provider)
	}
}

// buildEmbedder selects the embedding backend: huggingface (default) or ollama.
func buildEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString("embedding.provider")
	switch provider {
	case "", "huggingface":
		token := cfg.GetString("embedding.api_token")
		if token == "" {
			token = os.Getenv("HF_API_TOKEN")
		}
		if token == "" {
			return nil, fmt.Errorf("no Hugging Face token: set embedding.api_token in config or HF_API_TOKEN in the environment")
		}
		return huggingface.NewEmbeddingService(huggingface.Config{
			APIToken:   token,
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (want huggingface or ollama)", provider)
	}
}
