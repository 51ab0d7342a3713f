package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), opts.configPath, func(ctx context.Context, a *application) error {
				if err := a.store.Migrate(ctx); err != nil {
					return err
				}
				newOutput(cmd, opts).PrintMessage("Migrations applied (" + a.store.Driver() + ")")
				return nil
			})
		},
	}
}
