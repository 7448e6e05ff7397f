package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/cli"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/review"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Start an interactive review session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			grader, closeGrader, fallback := newGrader(cfg)
			defer func() { _ = closeGrader() }()
			if fallback {
				color.Yellow("OPENAI_API_KEYが設定されていないため、簡易採点を使用します。")
			} else {
				fmt.Printf("Using OpenAI provider (model: %s)\n", cfg.OpenAI.Model)
			}

			service := review.NewService(memo.NewDBRepository(db), grader, cfg.Review.SessionSize)
			return cli.NewReviewSessionCLI(service).Start(cmd.Context())
		},
	}
}
