package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interviewer/backend/internal/domain/statistics"
	"github.com/interviewer/backend/internal/service"
)

const interviewHelp = "Score 0-5, (a)nswer, (s)kip, (q)uit"

func (r *runner) interviewCmd() *cobra.Command {
	var chapter int

	cmd := &cobra.Command{
		Use:   "interview <guide>",
		Short: "Run an interactive interview over a guide",
		Long: `Questions are drawn at random, weighted towards low and missing scores,
and never repeated within a run. Every score entered is saved right away.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *int
			if cmd.Flags().Changed("chapter") {
				filter = &chapter
			}

			ctx := cmd.Context()
			svc := r.app.Interviews
			snap, err := svc.Start(ctx, args[0], filter)
			if err != nil {
				return err
			}
			defer svc.Exit(snap.ID)

			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())

			for snap.CurrentQuestion != nil {
				printQuestion(out, snap)

				answered := false
				for !answered {
					fmt.Fprintf(out, "%s: ", interviewHelp)
					if !in.Scan() {
						printSummary(out, snap)
						return in.Err()
					}
					input := strings.ToLower(strings.TrimSpace(in.Text()))

					switch input {
					case "q", "quit":
						printSummary(out, snap)
						return nil
					case "a", "answer":
						fmt.Fprintf(out, "\n%s\n\n", snap.CurrentQuestion.Question.AnswerMarkdown)
						continue
					case "s", "skip", "":
						answered = true
						continue
					}

					v, err := strconv.ParseFloat(input, 64)
					if err != nil {
						fmt.Fprintln(out, "Not a score.")
						continue
					}
					next, err := svc.Answer(ctx, snap.ID, v)
					if errors.Is(err, statistics.ErrInvalidScore) {
						fmt.Fprintln(out, "Scores are whole numbers from 0 to 5.")
						continue
					}
					if err != nil {
						return err
					}
					snap = next
					answered = true
				}

				if snap, err = svc.Next(snap.ID); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "No questions left.")
			printSummary(out, snap)
			return nil
		},
	}
	cmd.Flags().IntVarP(&chapter, "chapter", "c", 0, "Only ask questions from this chapter")
	return cmd
}

func printQuestion(w io.Writer, snap service.Snapshot) {
	q := snap.CurrentQuestion
	score := "new"
	if q.CurrentScore != nil {
		score = fmt.Sprintf("last %d", *q.CurrentScore)
	}
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintf(w, "Chapter %d, Q%d (%s, %d left)\n", q.ChapterNumber, q.Question.Number, score, snap.Remaining)
	fmt.Fprintln(w, q.Question.Title)
	fmt.Fprintln(w, "========================================")
}

func printSummary(w io.Writer, snap service.Snapshot) {
	st := snap.Stats
	fmt.Fprintf(w, "Answered %d of %d, average %.2f\n", st.QuestionsAnswered, st.TotalQuestions, st.AverageScore)
}
