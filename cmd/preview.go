package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/prompts"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate practice material without the TUI",
	Long: `Generate a reading set or a writing task and print it to stdout.

This is a developer tool for judging prompt and model quality. No timer
runs and nothing is scored.`,
}

var previewReadingCmd = &cobra.Command{
	Use:   "reading",
	Short: "Generate a passage and its questions",
	RunE:  runPreviewReading,
}

var previewWritingCmd = &cobra.Command{
	Use:   "writing",
	Short: "Generate a writing task, and optionally review an essay for it",
	RunE:  runPreviewWriting,
}

func init() {
	previewReadingCmd.Flags().StringSlice("types", prompts.DefaultQuestionTypes, "Question types to request")
	previewReadingCmd.Flags().Int("count", prompts.DefaultQuestions, "Number of questions to request")

	previewWritingCmd.Flags().String("task", "integrated", "Task type: integrated or independent")
	previewWritingCmd.Flags().String("essay", "", "Essay file to review against the generated task")

	previewCmd.AddCommand(previewReadingCmd)
	previewCmd.AddCommand(previewWritingCmd)
}

func runPreviewReading(cmd *cobra.Command, args []string) error {
	types, _ := cmd.Flags().GetStringSlice("types")
	count, _ := cmd.Flags().GetInt("count")

	d, err := buildDeps(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	s := exam.NewSession(nil)
	if err := exam.Navigate(s, exam.PageReadingSetup); err != nil {
		return err
	}
	if err := exam.SelectQuestionTypes(s, types); err != nil {
		return err
	}
	if err := exam.SetQuestionCount(s, count); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating %d questions (%s)...\n\n", s.QuestionCount, strings.Join(s.QuestionTypes, ", "))
	if err := d.trainer.StartReadingPractice(cmd.Context(), s); err != nil {
		return err
	}

	fmt.Fprintf(out, "── %s ──\n\n%s\n\n", s.Topic, s.Passage)
	for i, q := range s.Questions {
		fmt.Fprintf(out, "── Question %d/%d [%s] ──\n%s\n", i+1, len(s.Questions), q.Type, q.Question)
		for j, opt := range q.Options {
			mark := " "
			if j == q.Correct {
				mark = "*"
			}
			fmt.Fprintf(out, " %s %c) %s\n", mark, 'A'+j, opt)
		}
		fmt.Fprintln(out)
	}
	for _, w := range s.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func runPreviewWriting(cmd *cobra.Command, args []string) error {
	taskVal, _ := cmd.Flags().GetString("task")
	essayPath, _ := cmd.Flags().GetString("essay")

	var task exam.TaskType
	switch strings.ToLower(taskVal) {
	case "integrated":
		task = exam.Integrated
	case "independent":
		task = exam.Independent
	default:
		return fmt.Errorf("invalid task %q: must be integrated or independent", taskVal)
	}

	var essay string
	if essayPath != "" {
		b, err := readEssay(essayPath)
		if err != nil {
			return err
		}
		essay = b
	}

	d, err := buildDeps(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	s := exam.NewSession(nil)
	if err := exam.Navigate(s, exam.PageWritingSetup); err != nil {
		return err
	}
	if err := exam.ChooseTaskType(s, task); err != nil {
		return err
	}
	if err := d.trainer.StartWritingPractice(cmd.Context(), s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "── %s (%s) ──\n%s\n\n%s\n", s.WritingTitle, exam.FormatRemaining(task.Duration()), s.Theme, s.WritingPrompt)
	if essay == "" {
		return nil
	}

	exam.EditEssay(s, essay, d.trainer.Now())
	if err := exam.SubmitEssay(s); err != nil {
		return err
	}
	if err := d.trainer.EnterFeedback(cmd.Context(), s); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n── Feedback ──\n%s\n", s.Feedback)
	return nil
}

// readEssay reads an essay file, or stdin when path is "-".
func readEssay(path string) (string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open essay: %w", err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read essay: %w", err)
	}
	return string(b), nil
}
