package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/interviewer/backend/internal/domain/statistics"
)

func (r *runner) scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <guide> <chapter> <question> <score>",
		Short: "Record a 0 to 5 self-assessment for one question",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapter, err := parseNumber("chapter", args[1])
			if err != nil {
				return err
			}
			question, err := parseNumber("question", args[2])
			if err != nil {
				return err
			}
			raw, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("%w: got %q", statistics.ErrInvalidScore, args[3])
			}
			score, err := statistics.ParseScore(raw)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := r.app.Store.UpdateScore(ctx, args[0], chapter, question, score); err != nil {
				return err
			}
			stats, err := r.app.Store.GetStatistics(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ch, ok := stats.Chapter(chapter); ok {
				fmt.Fprintf(out, "Q%d scored %d. Chapter %d: %.2f, overall: %.2f\n",
					question, score, chapter, ch.ChapterScore, stats.OverallScore)
				return nil
			}
			fmt.Fprintf(out, "Q%d scored %d. Overall: %.2f\n", question, score, stats.OverallScore)
			return nil
		},
	}
}

func (r *runner) resetCmd() *cobra.Command {
	var chapter, question int

	cmd := &cobra.Command{
		Use:   "reset <guide>",
		Short: "Clear recorded scores of a guide, a chapter or one question",
		Long: `Without flags every score of the guide is cleared. --chapter limits the
reset to one chapter; --chapter together with --question to one question.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			out := cmd.OutOrStdout()

			switch {
			case question > 0 && chapter <= 0:
				return fmt.Errorf("--question requires --chapter")
			case question > 0:
				if err := r.app.Store.ResetQuestion(ctx, name, chapter, question); err != nil {
					return err
				}
				fmt.Fprintf(out, "Reset question %d of chapter %d in %q.\n", question, chapter, name)
			case chapter > 0:
				if err := r.app.Store.ResetChapter(ctx, name, chapter); err != nil {
					return err
				}
				fmt.Fprintf(out, "Reset chapter %d in %q.\n", chapter, name)
			default:
				if err := r.app.Store.ResetPosition(ctx, name); err != nil {
					return err
				}
				fmt.Fprintf(out, "Reset every score in %q.\n", name)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&chapter, "chapter", "c", 0, "Chapter number to reset")
	cmd.Flags().IntVarP(&question, "question", "q", 0, "Question number to reset, requires --chapter")
	return cmd
}
