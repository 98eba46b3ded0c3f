package main

import (
	"fmt"
	"strings"

	"sick-fits/repositories"
	"sick-fits/services"

	"github.com/spf13/cobra"
)

var (
	grantEmail       string
	grantPermissions []string
)

var grantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Set a user's permissions without an admin session",
	Long: `Overwrites the permissions of an existing user. Use it to create the first
ADMIN, who can then manage everyone else from the permissions page.`,
	Example: "  sick-fits grant --email wes@example.com --permissions ADMIN,USER",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		users := services.NewUserService(repositories.NewUserRepository(db))
		user, err := users.Grant(cmd.Context(), grantEmail, grantPermissions)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now has %s\n", user.Email, strings.Join(user.Permissions.Strings(), ", "))
		return nil
	},
}

func init() {
	grantCmd.Flags().StringVar(&grantEmail, "email", "", "email of the user to update")
	grantCmd.Flags().StringSliceVar(&grantPermissions, "permissions", nil, "comma-separated permissions, e.g. ADMIN,USER")
	_ = grantCmd.MarkFlagRequired("email")
	_ = grantCmd.MarkFlagRequired("permissions")
}
