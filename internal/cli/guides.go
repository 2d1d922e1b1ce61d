package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/interviewer/backend/internal/domain/statistics"
)

func (r *runner) guidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guides",
		Short: "List the known guides with their headline scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			guides, err := r.app.Store.ListGuides(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(guides) == 0 {
				fmt.Fprintln(out, "No guides found.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "GUIDE\tCHAPTERS\tQUESTIONS\tANSWERED\tSCORE")
			for _, g := range guides {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\n",
					g.Name, g.TotalChapters, g.TotalQuestions, g.TotalAnswered, g.OverallScore)
			}
			return tw.Flush()
		},
	}
}

func (r *runner) statsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <guide>",
		Short: "Show the statistics tree of a guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := r.app.Store.GetStatistics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			printStatistics(out, stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw statistics tree as JSON")
	return cmd
}

func printStatistics(w io.Writer, p *statistics.PositionStatistic) {
	fmt.Fprintf(w, "%s: overall %.2f, %d answered\n", p.Position, p.OverallScore, p.TotalAnswered)
	for _, ch := range p.Chapters {
		fmt.Fprintf(w, "\n%d. %s  (%.2f, %d/%d answered)\n",
			ch.ChapterNumber, ch.ChapterTitle, ch.ChapterScore, ch.AnsweredCount, ch.TotalQuestions)
		for _, q := range ch.Questions {
			score := "-"
			if q.AnswerScore != nil {
				score = fmt.Sprint(*q.AnswerScore)
			}
			fmt.Fprintf(w, "   [%s] Q%d %s\n", score, q.QuestionNumber, q.QuestionTitle)
		}
	}
}

func (r *runner) weakCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "weak <guide>",
		Short: "List answered questions scored below a threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if threshold < statistics.MinScore || threshold > statistics.MaxScore+1 {
				return fmt.Errorf("threshold must be between %d and %d", statistics.MinScore, statistics.MaxScore+1)
			}
			weak, err := r.app.Store.WeakQuestions(cmd.Context(), args[0], threshold)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(weak) == 0 {
				fmt.Fprintf(out, "No questions scored below %d.\n", threshold)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tCHAPTER\tQUESTION\tTITLE")
			for _, q := range weak {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", q.AnswerScore, q.ChapterNumber, q.QuestionNumber, q.QuestionTitle)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", statistics.DefaultWeakThreshold, "Scores below this value count as weak")
	return cmd
}
