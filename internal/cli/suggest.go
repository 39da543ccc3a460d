package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) newSuggestCmd() *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest three recipes for the given ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := flags.form()
			if err := form.Validate(); err != nil {
				return err
			}

			svc, err := a.recipeService()
			if err != nil {
				return err
			}
			suggestions, err := svc.GenerateSuggestions(cmd.Context(), form)
			if err != nil {
				return err
			}
			return a.printer(cmd).suggestions(suggestions)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
