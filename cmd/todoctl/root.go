package main

import (
	"strings"

	"github.com/phrazzld/todo-api/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "TODO"
	apiURLKey = "api_url"
)

type commandContext struct {
	v *viper.Viper
}

func (c *commandContext) apiURL() string {
	return strings.TrimSpace(c.v.GetString(apiURLKey))
}

func (c *commandContext) client() (*client.Client, error) {
	return client.New(c.apiURL())
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetDefault(apiURLKey, client.DefaultURL)
	_ = v.BindEnv(apiURLKey)

	ctx := &commandContext{v: v}

	rootCmd := &cobra.Command{
		Use:           "todoctl",
		Short:         "Show and edit the task board",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().String("api-url", client.DefaultURL,
		"GraphQL endpoint of the todo API (env TODO_API_URL)")
	_ = v.BindPFlag(apiURLKey, rootCmd.PersistentFlags().Lookup("api-url"))

	rootCmd.AddCommand(newBoardCommand(ctx))
	rootCmd.AddCommand(newAddCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx, "complete", client.StatusCompleted,
		"Move a task to the Completed column"))
	rootCmd.AddCommand(newStatusCommand(ctx, "reopen", client.StatusPending,
		"Move a task back to the Pending column"))

	return rootCmd
}
