package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minho-jung/kidlearn/internal/workflow"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Submit a child's quiz answers and get feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		childID, _ := cmd.Flags().GetString("child")
		lessonID, _ := cmd.Flags().GetString("lesson")
		answer, _ := cmd.Flags().GetString("answer")
		quiz, _ := cmd.Flags().GetString("quiz")

		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.close()

		// The quiz text can be omitted when the lesson is on record.
		if quiz == "" {
			if sess, err := a.store.Sessions().Get(cmd.Context(), childID, lessonID); err == nil {
				quiz = sess.Quiz
			}
		}

		resp, err := a.orch.SubmitAssessment(cmd.Context(), workflow.AssessmentSubmission{
			ChildID:       childID,
			LessonID:      lessonID,
			ResponsesText: answer,
			MaterialsText: quiz,
		})
		if err != nil {
			return err
		}

		sep := strings.Repeat("─", 60)
		fmt.Println(sep)
		fmt.Println(resp.Feedback)
		if resp.NextLesson != "" {
			fmt.Println(sep)
			fmt.Println("Next lesson:")
			fmt.Println(resp.NextLesson)
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().String("child", "", "Child identifier")
	assessCmd.Flags().String("lesson", "", "Lesson identifier from the lesson command")
	assessCmd.Flags().String("answer", "", "The child's answers")
	assessCmd.Flags().String("quiz", "", "Quiz text answered against (defaults to the stored session's quiz)")
	assessCmd.MarkFlagRequired("child")
	assessCmd.MarkFlagRequired("lesson")
	assessCmd.MarkFlagRequired("answer")
}
