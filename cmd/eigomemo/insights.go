package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/srs"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/statistics"
)

func newInsightsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show collection statistics and today's review picks",
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

			memos, err := memo.NewDBRepository(db).FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list memos: %w", err)
			}

			now := time.Now()
			printStatistics(statistics.Calculate(memos, now))
			printTodayPicks(memos, now, cfg.Review.SessionSize)
			return nil
		},
	}
}

func printStatistics(stats statistics.MemoStatistics) {
	bold := color.New(color.Bold)

	_, _ = bold.Println("メモの状況")
	fmt.Printf("  全体: %d件 (卒業 %d件, %.0f%%)\n", stats.Total, stats.Done, stats.CompletionRate*100)
	fmt.Printf("  今日が復習日: %d件\n", stats.DueNow)
	fmt.Printf("  苦手 (前回%d点未満): %d件\n", srs.PassScore, stats.Weak)
	fmt.Printf("  タグ付け済み: %d件 (要確認 %d件)\n", stats.Tagged, stats.Uncertain)
	if stats.AverageScore > 0 {
		fmt.Printf("  平均スコア: %.1f点\n", stats.AverageScore)
	}

	if len(stats.TopTopics) > 0 {
		_, _ = bold.Println("よく出るトピック")
		for _, topic := range stats.TopTopics {
			fmt.Printf("  %s: %d件\n", topic.Name, topic.Count)
		}
	}
	if len(stats.TopPatterns) > 0 {
		_, _ = bold.Println("よく出る文型")
		for _, pattern := range stats.TopPatterns {
			fmt.Printf("  %s: %d件\n", pattern.Name, pattern.Count)
		}
	}
}

func printTodayPicks(memos []memo.Memo, now time.Time, sessionSize int) {
	picks := srs.SelectReviewItems(memos, now, sessionSize)
	if len(picks) == 0 {
		return
	}

	bold := color.New(color.Bold)
	_, _ = bold.Println("今日のレビュー候補")
	for _, m := range picks {
		fmt.Printf("  %s (level %d)\n", m.SourceText, m.Level)
	}
	fmt.Println("`eigomemo review` で始められます。")
}
