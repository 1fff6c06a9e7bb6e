package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/access"
)

// passwordEnv lets scripts pass the initial password without exposing it in
// the process list.
const passwordEnv = "WOOLDANJI_STAFF_PASSWORD"

func staffCmd(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage console staff accounts",
	}
	cmd.AddCommand(staffCreateCmd(envFile))
	return cmd
}

func staffCreateCmd(envFile *string) *cobra.Command {
	var (
		email    string
		name     string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		Long: `Create a staff account. Use this to bootstrap the first administrator.

The password is read from --password or, when that is empty, from the
` + passwordEnv + ` environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return errors.New("a password is required (--password or " + passwordEnv + ")")
			}

			client, _, logger, err := openClient(*envFile)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			ctx := access.WithPrincipal(context.Background(), access.System())
			st, err := client.Staff.Create(ctx, service.StaffParams{
				Email:    email,
				Name:     name,
				Password: password,
				Role:     strings.ToLower(role),
			})
			if err != nil {
				return fmt.Errorf("create staff: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (id %d)\n", st.Role(), st.Email(), st.ID())
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", string(access.RoleAdmin), "Role: admin or manager")
	cmd.Flags().StringVar(&password, "password", "", "Initial password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
