package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

type printer struct {
	out  io.Writer
	json bool
}

func (a *app) printer(cmd *cobra.Command) printer {
	return printer{out: cmd.OutOrStdout(), json: a.format == "json"}
}

func (p printer) encode(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) suggestions(suggestions []recipe.Suggestion) error {
	if p.json {
		return p.encode(map[string]any{"suggestions": suggestions})
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(p.out, "No suggestions could be read from the response. Try again.")
		return nil
	}
	for i, s := range suggestions {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, s.Title)
		if s.Description != "" {
			fmt.Fprintf(p.out, "   %s\n", strings.ReplaceAll(s.Description, "\n", "\n   "))
		}
	}
	return nil
}

func (p printer) recipe(r *recipe.FullRecipe) error {
	if p.json {
		return p.encode(map[string]any{"recipe": r})
	}

	fmt.Fprintln(p.out, r.Title)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(p.out, "  - %s\n", ing)
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Instructions:")
	for _, step := range r.Instructions {
		fmt.Fprintf(p.out, "  %s\n", step)
	}

	n := r.Nutrition
	if n.IsEmpty() {
		return nil
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Nutrition (per serving):")
	if n.Calories != nil {
		fmt.Fprintf(p.out, "  Calories: %d\n", *n.Calories)
	}
	if n.Protein != nil {
		fmt.Fprintf(p.out, "  Protein: %dg\n", *n.Protein)
	}
	if n.Carbohydrates != nil {
		fmt.Fprintf(p.out, "  Carbohydrates: %dg\n", *n.Carbohydrates)
	}
	if n.Fat != nil {
		fmt.Fprintf(p.out, "  Fat: %dg\n", *n.Fat)
	}
	return nil
}
