package cli

import (
	"context"

	"github.com/spf13/cobra"

	"taskmanager/internal/identity/domain/entities"
	"taskmanager/internal/validate"
)

func newRegisterCmd(opts *options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Credentials(username, password); err != nil {
				return err
			}

			return withApp(cmd.Context(), opts.configPath, func(ctx context.Context, a *application) error {
				if err := a.identity.Register(ctx, username, password); err != nil {
					return err
				}
				newOutput(cmd, opts).PrintMessage("Registered " + username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username, 4 to 20 characters (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password, 6 to 20 letters and digits (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the account reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Credentials(username, password); err != nil {
				return err
			}

			return withApp(cmd.Context(), opts.configPath, func(ctx context.Context, a *application) error {
				ref, err := authenticate(ctx, a, username, password)
				if err != nil {
					return err
				}
				newOutput(cmd, opts).Print(ref)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func authenticate(ctx context.Context, a *application, username, password string) (*entities.IdentityRef, error) {
	ref, err := a.identity.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, ErrInvalidCredentials
	}
	return ref, nil
}
