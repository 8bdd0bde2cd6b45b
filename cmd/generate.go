package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hjjung-katech/youtube-transcriber/internal/config"
	"github.com/hjjung-katech/youtube-transcriber/internal/script"
	"github.com/hjjung-katech/youtube-transcriber/internal/translate"
	"github.com/hjjung-katech/youtube-transcriber/internal/worker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <url-or-video-id>",
	Short: "Generate transcript documents for a YouTube video",
	Long: `Generate fetches the video's caption track, refines it into a readable
script, and writes a timestamped view and a full-script view, each as a
markdown and a plain-text file. With --translate the refined script is also
machine-translated when its language differs from the target language.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	outputDir           string
	targetLang          string
	doTranslate         bool
	translateParagraphs bool
	apiKey              string
	configFile          string
	maxRetries          int
	maxConcurrent       int
	rateLimit           int
)

func init() {
	defaults := config.Default()

	generateCmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaults.OutputDir, "output directory")
	generateCmd.Flags().StringVar(&targetLang, "target-lang", defaults.TargetLang, "translation target language: ko, ja, zh, en")
	generateCmd.Flags().BoolVarP(&doTranslate, "translate", "t", false, "translate the full script with the Gemini API")
	generateCmd.Flags().BoolVar(&translateParagraphs, "translate-paragraphs", false, "also translate each paragraph of the script")
	generateCmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides config file and GEMINI_API_KEY)")
	generateCmd.Flags().StringVar(&configFile, "config", "", "TOML config file path")
	generateCmd.Flags().IntVar(&maxRetries, "max-retries", defaults.MaxRetries, "max attempts per translation call")
	generateCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.MaxConcurrent, "max concurrent paragraph translations")
	generateCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.APIRateLimitPerMin, "translation API calls per minute")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return err
	}

	// Config file values apply where the flag was left at its default.
	flags := cmd.Flags()
	if !flags.Changed("output-dir") && cfg.OutputDir != "" {
		outputDir = cfg.OutputDir
	}
	if !flags.Changed("target-lang") && cfg.TargetLang != "" {
		targetLang = cfg.TargetLang
	}
	if !flags.Changed("max-retries") && cfg.MaxRetries > 0 {
		maxRetries = cfg.MaxRetries
	}
	if !flags.Changed("max-concurrent") && cfg.MaxConcurrent > 0 {
		maxConcurrent = cfg.MaxConcurrent
	}
	if !flags.Changed("rate-limit") && cfg.APIRateLimitPerMin > 0 {
		rateLimit = cfg.APIRateLimitPerMin
	}

	if !config.IsSupportedLang(targetLang) {
		return fmt.Errorf("unsupported target language: %s", targetLang)
	}

	var tr translate.Translator
	if doTranslate || translateParagraphs {
		key := resolveAPIKey(cfg)
		if key == "" {
			slog.Warn("Gemini API key not set, skipping translation")
			doTranslate = false
			translateParagraphs = false
		} else {
			tr = translate.NewGemini(key, maxRetries)
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := worker.Run(ctx, worker.Options{
		Video:               args[0],
		OutputDir:           outputDir,
		TargetLang:          script.Lang(targetLang),
		Translate:           doTranslate,
		TranslateParagraphs: translateParagraphs,
		Translator:          tr,
		MaxConcurrent:       maxConcurrent,
		RateLimitPerMin:     rateLimit,
	})
	if err != nil {
		return err
	}

	if !quiet {
		printSummary(result)
		slog.Info("done", "title", result.Title, "language", result.Language,
			"entries", result.Entries, "translated", result.Translated)
	}
	return nil
}

// configPath returns the --config value or the per-user default location.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "youtube-transcriber", "config.toml")
}

// resolveAPIKey resolves the Gemini key: flag, then config file, then the
// GEMINI_API_KEY environment variable.
func resolveAPIKey(cfg *config.Config) string {
	if apiKey != "" {
		return apiKey
	}
	if cfg.GeminiAPIKey != "" {
		return cfg.GeminiAPIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

func printSummary(result *worker.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Document"})
	for i, f := range result.Files {
		t.AppendRow(table.Row{i + 1, f})
	}
	t.Render()
}
