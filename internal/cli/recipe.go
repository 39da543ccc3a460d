package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) newRecipeCmd() *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "recipe <title>",
		Short: "Generate the full recipe for a suggestion title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := flags.form()
			if err := form.Validate(); err != nil {
				return err
			}

			svc, err := a.recipeService()
			if err != nil {
				return err
			}
			full, err := svc.GenerateFullRecipe(cmd.Context(), args[0], form)
			if err != nil {
				return err
			}
			return a.printer(cmd).recipe(full)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
