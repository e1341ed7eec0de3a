package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradejournal/internal/models"
)

// addTagCommands adds tag and tag category management commands.
func addTagCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag management",
		Long:  "Manage tags and the categories that group them.",
	}

	cmd.AddCommand(newTagAddCmd(app))
	cmd.AddCommand(newTagListCmd(app))
	cmd.AddCommand(newTagDeleteCmd(app))
	cmd.AddCommand(newTagCategoryCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTagAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Create a tag",
		Example: `  journal tag add "FOMO entry" --category C1712345`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			categoryID, _ := cmd.Flags().GetString("category")
			tag := &models.Tag{
				ID:         fmt.Sprintf("TAG%d", time.Now().UnixNano()),
				Name:       args[0],
				CategoryID: categoryID,
			}
			if err := app.Store.SaveTag(ctx, tag); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(tag)
			}
			output.Success("✓ Tag %s created (%s)", tag.Name, tag.ID)
			return nil
		},
	}

	cmd.Flags().String("category", "", "tag category id (required)")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newTagListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags grouped by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			categories, err := app.Store.GetTagCategories(ctx)
			if err != nil {
				return err
			}
			tags, err := app.Store.GetTags(ctx)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"categories": categories,
					"tags":       tags,
				})
			}
			if len(categories) == 0 && len(tags) == 0 {
				output.Info("No tags defined.")
				return nil
			}
			for _, cat := range categories {
				output.Bold("%s  (%s)", cat.Name, cat.ID)
				for _, tag := range tags {
					if tag.CategoryID == cat.ID {
						output.Printf("  [%s] %s\n", tag.ID, tag.Name)
					}
				}
			}
			return nil
		},
	}
}

func newTagDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag-id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			if err := app.Store.DeleteTag(ctx, args[0]); err != nil {
				return err
			}
			output.Success("✓ Tag %s deleted", args[0])
			return nil
		},
	}
}

func newTagCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Tag category management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "add <name>",
		Short:   "Create a tag category",
		Example: `  journal tag category add Mistakes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			cat := &models.TagCategory{
				ID:   fmt.Sprintf("C%d", time.Now().UnixNano()),
				Name: args[0],
			}
			if err := app.Store.SaveTagCategory(ctx, cat); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(cat)
			}
			output.Success("✓ Category %s created (%s)", cat.Name, cat.ID)
			return nil
		},
	})

	return cmd
}
