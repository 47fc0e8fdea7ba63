package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/subosito/gotenv"
)

func main() {
	_ = gotenv.Load()
	initLogger()

	cfg, err := LoadConfig()
	if err != nil {
		fail(err)
	}
	if err := run(cfg); err != nil {
		fail(err)
	}
}

func fail(err error) {
	slog.Error("analysis failed", "error", err)
	fmt.Printf("\n❌ Errore: %v\n", err)
	os.Exit(1)
}

func run(cfg Config) error {
	ctx := context.Background()

	slog.Info("starting analysis", "csv", cfg.CSVPath, "max_reviews", cfg.MaxReviews, "column", cfg.ReviewColumn)
	reviews, batchSize, err := LoadReviews(cfg.CSVPath, cfg.MaxReviews, cfg.ReviewColumn)
	if err != nil {
		return err
	}

	prompt := BuildPrompt(reviews, batchSize)

	analyzer, err := NewGeminiAnalyzer(ctx, cfg.GeminiAPIKey, time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)
	if err != nil {
		return err
	}

	result, err := analyzer.Invoke(ctx, prompt)
	if err != nil {
		return err
	}

	fmt.Print(FormatReport(result))

	if err := SaveResults(result, cfg.OutputPath); err != nil {
		// A failed save must not abort a run that already produced a report.
		slog.Error("saving results failed", "path", cfg.OutputPath, "error", err)
	}

	fmt.Println("📄 Output JSON completo:")
	if err := writeIndentedJSON(os.Stdout, result); err != nil {
		slog.Error("dumping result json failed", "error", err)
	}
	return nil
}
