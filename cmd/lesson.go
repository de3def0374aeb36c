package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minho-jung/kidlearn/internal/workflow"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Generate an initial lesson and quiz for a child",
	RunE: func(cmd *cobra.Command, args []string) error {
		childID, _ := cmd.Flags().GetString("child")
		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")
		interests, _ := cmd.Flags().GetStringSlice("interests")

		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.close()

		resp, err := a.orch.InitProfile(cmd.Context(), workflow.ChildProfile{
			ChildID:   childID,
			Name:      name,
			Age:       age,
			Interests: interests,
		})
		if err != nil {
			return err
		}

		sep := strings.Repeat("─", 60)
		fmt.Println(sep)
		fmt.Println(resp.Lesson)
		if resp.MaterialsText != "" {
			fmt.Println(sep)
			fmt.Println(resp.MaterialsText)
		}
		fmt.Println(sep)
		fmt.Printf("Lesson ID: %s\n", resp.LessonID)
		return nil
	},
}

func init() {
	lessonCmd.Flags().String("child", "", "Child identifier")
	lessonCmd.Flags().String("name", "", "Child's display name")
	lessonCmd.Flags().Int("age", 0, "Child's age")
	lessonCmd.Flags().StringSlice("interests", nil, "Comma-separated interests")
	lessonCmd.MarkFlagRequired("child")
	lessonCmd.MarkFlagRequired("name")
	lessonCmd.MarkFlagRequired("age")
}
