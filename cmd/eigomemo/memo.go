package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/inference"
	"github.com/koutarou20820065963-netizen/eigomemo/internal/memo"
)

func newMemoCommand() *cobra.Command {
	memoCommand := &cobra.Command{
		Use:   "memo",
		Short: "Manage memos of phrases you could not express in English",
	}

	memoCommand.AddCommand(
		newMemoAddCommand(),
		newMemoListCommand(),
		newMemoShowCommand(),
		newMemoTranslateCommand(),
		newMemoTagCommand(),
		newMemoDoneCommand(),
		newMemoDeleteCommand(),
	)

	return memoCommand
}

func newMemoAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a new memo with the phrase you could not say",
		Args:  cobra.MinimumNArgs(1),
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

			m := memo.New(strings.Join(args, " "))
			repo := memo.NewDBRepository(db)
			if err := repo.Create(cmd.Context(), &m); err != nil {
				return fmt.Errorf("repo.Create() > %w", err)
			}

			fmt.Printf("Added memo %s\n", m.ID)
			fmt.Printf("Run `eigomemo memo translate %s` to generate a reference answer.\n", m.ID)
			return nil
		},
	}
}

func newMemoListCommand() *cobra.Command {
	var (
		status  string
		dueOnly bool
	)

	command := &cobra.Command{
		Use:   "list",
		Short: "List memos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dueOnly && status != "" {
				return fmt.Errorf("--due and --status cannot be combined")
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repo := memo.NewDBRepository(db)

			var memos []memo.Memo
			switch {
			case dueOnly:
				memos, err = repo.FindDue(cmd.Context(), time.Now())
			case status != "":
				if status != string(memo.StatusUnprocessed) && status != string(memo.StatusDone) {
					return fmt.Errorf("unknown status %q: must be %q or %q", status, memo.StatusUnprocessed, memo.StatusDone)
				}
				memos, err = repo.FindByStatus(cmd.Context(), memo.Status(status))
			default:
				memos, err = repo.FindAll(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to list memos: %w", err)
			}

			if len(memos) == 0 {
				if dueOnly {
					fmt.Println("No memos are due for review today.")
					return nil
				}
				fmt.Println("No memos yet. Add one with `eigomemo memo add <text>`.")
				return nil
			}
			for _, m := range memos {
				printMemoLine(m)
			}
			return nil
		},
	}
	command.Flags().StringVar(&status, "status", "", "filter by status (unprocessed or done)")
	command.Flags().BoolVar(&dueOnly, "due", false, "show only memos whose review date has arrived")

	return command
}

func newMemoShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a memo with its reference answer and schedule",
		Args:  cobra.ExactArgs(1),
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

			m, err := memo.NewDBRepository(db).GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get the memo: %w", err)
			}

			printMemoDetail(m)
			return nil
		},
	}
}

func newMemoTranslateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <id>",
		Short: "Generate and store the English reference answer for a memo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			client, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repo := memo.NewDBRepository(db)

			m, err := repo.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get the memo: %w", err)
			}

			result, err := client.Translate(cmd.Context(), inference.TranslateRequest{
				SourceText: m.SourceText,
			})
			if err != nil {
				return fmt.Errorf("client.Translate() > %w", err)
			}

			updated, err := repo.UpdateGeneration(cmd.Context(), m.ID, memo.GenerationPatch{
				ReferenceAnswer: result.Best,
				Alternatives:    result.Alternatives,
				NotesJA:         result.NotesJA,
				ExampleEN:       result.ExampleEN,
				ExampleJA:       result.ExampleJA,
			})
			if err != nil {
				return fmt.Errorf("repo.UpdateGeneration() > %w", err)
			}

			printMemoDetail(updated)
			return nil
		},
	}
}

func newMemoTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id>",
		Short: "Classify a memo into a topic and grammar pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			client, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			repo := memo.NewDBRepository(db)

			m, err := repo.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get the memo: %w", err)
			}

			referenceAnswer := ""
			if m.ReferenceAnswer != nil {
				referenceAnswer = *m.ReferenceAnswer
			}
			result, err := client.ClassifyMemo(cmd.Context(), inference.ClassifyMemoRequest{
				SourceText:      m.SourceText,
				ReferenceAnswer: referenceAnswer,
			})
			if err != nil {
				return fmt.Errorf("client.ClassifyMemo() > %w", err)
			}

			if _, err := repo.UpdateTag(cmd.Context(), m.ID, memo.TagPatch{
				Topic:      result.Topic,
				Pattern:    result.Pattern,
				Confidence: result.Confidence,
			}); err != nil {
				return fmt.Errorf("repo.UpdateTag() > %w", err)
			}

			fmt.Printf("topic: %s\npattern: %s\nconfidence: %d\n", result.Topic, result.Pattern, result.Confidence)
			return nil
		},
	}
}

func newMemoDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a memo as graduated",
		Args:  cobra.ExactArgs(1),
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

			m, err := memo.NewDBRepository(db).SetStatus(cmd.Context(), args[0], memo.StatusDone)
			if err != nil {
				return fmt.Errorf("failed to update the memo: %w", err)
			}

			printMemoLine(m)
			return nil
		},
	}
}

func newMemoDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a memo",
		Args:  cobra.ExactArgs(1),
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

			if err := memo.NewDBRepository(db).Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete the memo: %w", err)
			}

			fmt.Printf("Deleted memo %s\n", args[0])
			return nil
		},
	}
}

func printMemoLine(m memo.Memo) {
	statusLabel := color.YellowString("%s", m.Status)
	if m.Status == memo.StatusDone {
		statusLabel = color.GreenString("%s", m.Status)
	}
	answer := "(not translated yet)"
	if m.HasReferenceAnswer() {
		answer = *m.ReferenceAnswer
	}
	fmt.Printf("%s  [%s] level %d  %s  %s\n", m.ID, statusLabel, m.Level, m.SourceText, answer)
}

func printMemoDetail(m memo.Memo) {
	bold := color.New(color.Bold)

	_, _ = bold.Printf("%s\n", m.SourceText)
	if m.HasReferenceAnswer() {
		fmt.Printf("英語: %s\n", *m.ReferenceAnswer)
	}
	for _, alternative := range m.Alternatives() {
		fmt.Printf("別解: %s\n", alternative)
	}
	if m.NotesJA != nil && *m.NotesJA != "" {
		fmt.Printf("メモ: %s\n", *m.NotesJA)
	}
	if m.ExampleEN != nil && *m.ExampleEN != "" {
		fmt.Printf("例文: %s\n", *m.ExampleEN)
		if m.ExampleJA != nil && *m.ExampleJA != "" {
			fmt.Printf("      %s\n", *m.ExampleJA)
		}
	}
	if m.TagTopic != nil || m.TagPattern != nil {
		topic, pattern := "", ""
		if m.TagTopic != nil {
			topic = *m.TagTopic
		}
		if m.TagPattern != nil {
			pattern = *m.TagPattern
		}
		fmt.Printf("タグ: %s / %s", topic, pattern)
		if m.TagConfidence != nil {
			fmt.Printf(" (confidence %d)", *m.TagConfidence)
		}
		fmt.Println()
	}

	fmt.Printf("status: %s, level: %d, interval: %d days\n", m.Status, m.Level, m.IntervalDays)
	if m.NextReviewAt != nil {
		fmt.Printf("next review: %s\n", m.NextReviewAt.Format("2006-01-02"))
	}
	if m.LastScore != nil {
		fmt.Printf("last score: %d\n", *m.LastScore)
	}
}
