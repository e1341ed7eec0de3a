package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/models"
)

// addPlaybookCommands adds playbook management commands.
func addPlaybookCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Playbook management",
		Long:  "Define playbooks with grouped rule checklists.",
	}

	cmd.AddCommand(newPlaybookAddCmd(app))
	cmd.AddCommand(newPlaybookListCmd(app))
	cmd.AddCommand(newPlaybookRuleCmd(app))
	cmd.AddCommand(newPlaybookDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newPlaybookAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name>",
		Short:   "Create a playbook",
		Example: `  journal playbook add "Opening Range Breakout"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			pb := &models.Playbook{
				ID:   fmt.Sprintf("P%d", time.Now().UnixNano()),
				Name: args[0],
			}
			if err := app.Store.SavePlaybook(ctx, pb); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(pb)
			}
			output.Success("✓ Playbook %s created (%s)", pb.Name, pb.ID)
			return nil
		},
	}
}

func newPlaybookListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List playbooks with their rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			playbooks, err := app.Store.GetPlaybooks(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(playbooks)
			}
			if len(playbooks) == 0 {
				output.Info("No playbooks defined.")
				return nil
			}
			for _, pb := range playbooks {
				output.Bold("%s  (%s)", pb.Name, pb.ID)
				for _, group := range pb.Groups {
					output.Printf("  %s\n", group.Name)
					for _, item := range group.Items {
						output.Printf("    [%s] %s\n", item.ID, item.Text)
					}
				}
				output.Println()
			}
			return nil
		},
	}
}

func newPlaybookRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Playbook rule management",
	}
	cmd.AddCommand(newPlaybookRuleAddCmd(app))
	return cmd
}

func newPlaybookRuleAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <playbook-id> <text>",
		Short:   "Add a rule item to a playbook group",
		Example: `  journal playbook rule add P1712345 "Moved to breakeven" --group Exit`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			playbooks, err := app.Store.GetPlaybooks(ctx)
			if err != nil {
				return err
			}
			var pb *models.Playbook
			for i := range playbooks {
				if playbooks[i].ID == args[0] {
					pb = &playbooks[i]
					break
				}
			}
			if pb == nil {
				return fmt.Errorf("playbook %s not found", args[0])
			}

			groupName, _ := cmd.Flags().GetString("group")
			item := models.RuleItem{
				ID:   fmt.Sprintf("R%d", time.Now().UnixNano()),
				Text: args[1],
			}
			var group *models.RuleGroup
			for i := range pb.Groups {
				if pb.Groups[i].Name == groupName {
					group = &pb.Groups[i]
					break
				}
			}
			if group == nil {
				pb.Groups = append(pb.Groups, models.RuleGroup{
					ID:   fmt.Sprintf("G%d", time.Now().UnixNano()),
					Name: groupName,
				})
				group = &pb.Groups[len(pb.Groups)-1]
			}
			group.Items = append(group.Items, item)

			if err := app.Store.SavePlaybook(ctx, pb); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(pb)
			}
			output.Success("✓ Rule %s added to %s / %s", item.ID, pb.Name, group.Name)
			return nil
		},
	}

	cmd.Flags().String("group", "General", "rule group name")
	return cmd
}

func newPlaybookDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <playbook-id>",
		Short: "Delete a playbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			if err := app.Store.DeletePlaybook(ctx, args[0]); err != nil {
				return err
			}
			output.Success("✓ Playbook %s deleted", args[0])
			return nil
		},
	}
}
