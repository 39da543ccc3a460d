// Package cli implements the recipectl command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/recipe-wizard/backend/config"
	"github.com/pageza/recipe-wizard/backend/internal/completion"
	"github.com/pageza/recipe-wizard/backend/internal/logger"
	"github.com/pageza/recipe-wizard/backend/internal/service"
)

// app carries state shared by subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	format  string
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "recipectl",
		Short: "Generate recipe ideas and full recipes from the command line",
		Long: `recipectl talks to the same completion endpoint as the Recipe Wizard API.

Examples:
  recipectl suggest --protein salmon --amount 400 --starch rice --extra lemon --style italian
  recipectl recipe "Lemon Herb Salmon" --protein salmon --amount 400 --starch rice
  recipectl version`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./recipewizard.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVarP(&a.format, "format", "f", "text", "output format (text, json)")
	flags.String("model", "", "completion model (overrides openai_model)")
	flags.String("base-url", "", "completion API base URL (overrides openai_base_url)")
	flags.Duration("timeout", 0, "completion timeout (overrides completion_timeout)")

	_ = a.v.BindPFlag("openai_model", flags.Lookup("model"))
	_ = a.v.BindPFlag("openai_base_url", flags.Lookup("base-url"))
	_ = a.v.BindPFlag("completion_timeout", flags.Lookup("timeout"))

	root.AddCommand(a.newSuggestCmd(), a.newRecipeCmd(), newVersionCmd())
	return root
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}
	return config.Load(a.v)
}

func (a *app) logger() zerolog.Logger {
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	return logger.New(level, true, os.Stderr)
}

func (a *app) recipeService() (*service.RecipeService, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	log := a.logger()
	client := completion.NewClient(completion.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.CompletionTimeout,
	}, log)
	log.Debug().Str("model", client.Model()).Str("base_url", cfg.OpenAIBaseURL).Msg("using completion endpoint")
	return service.NewRecipeService(client, log), nil
}
