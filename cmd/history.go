package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minho-jung/kidlearn/internal/workflow"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List a child's stored learning sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		childID, _ := cmd.Flags().GetString("child")
		summary, _ := cmd.Flags().GetBool("summary")

		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sessions, err := a.store.Sessions().HistoryByChild(cmd.Context(), childID)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-30s  %s\n", "Lesson ID", "Created", "Topic", "Feedback")
		fmt.Println(strings.Repeat("─", 100))
		for _, s := range sessions {
			topic := firstLine(s.Curriculum)
			if r := []rune(topic); len(r) > 30 {
				topic = string(r[:30])
			}
			fb := "—"
			if s.Feedback != "" {
				fb = "✓"
			}
			fmt.Printf("%-36s  %-19s  %-30s  %s\n",
				s.LessonID,
				s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				topic,
				fb,
			)
		}

		if !summary {
			return nil
		}

		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")

		history := make([]workflow.HistoryEntry, 0, len(sessions))
		for _, s := range sessions {
			if s.Feedback == "" {
				continue
			}
			history = append(history, workflow.HistoryEntry{
				Topic:    firstLine(s.Curriculum),
				Feedback: s.Feedback,
			})
		}

		resp, err := a.orch.OverallFeedback(cmd.Context(), workflow.OverallFeedbackRequest{
			Name:    name,
			Age:     age,
			History: history,
		})
		if err != nil {
			return err
		}

		fmt.Println(strings.Repeat("─", 100))
		fmt.Println(resp.Feedback)
		return nil
	},
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}

func init() {
	historyCmd.Flags().String("child", "", "Child identifier")
	historyCmd.Flags().Bool("summary", false, "Also generate an overall progress summary")
	historyCmd.Flags().String("name", "", "Child's display name (used with --summary)")
	historyCmd.Flags().Int("age", 0, "Child's age (used with --summary)")
	historyCmd.MarkFlagRequired("child")
}
