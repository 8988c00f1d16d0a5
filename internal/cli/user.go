// filepath: internal/cli/user.go
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"woodbank/internal/auth"
	"woodbank/internal/repository"

	"github.com/spf13/cobra"
)

var (
	userPassword    string
	userRole        string
	userDisplayName string
	userEmail       string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a login account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		user, err := repo.CreateUser(&repository.UserCreateArgs{
			Username:    args[0],
			Password:    userPassword,
			Role:        userRole,
			DisplayName: userDisplayName,
			Email:       userEmail,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (%s)\n", user.Username, auth.RoleDisplayName(user.Role))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List login accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		users, err := repo.GetUsers()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tDISPLAY NAME\tEMAIL")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, auth.RoleDisplayName(u.Role), u.DisplayName, u.Email)
		}
		return w.Flush()
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Change an account's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.UpdateUserPassword(args[0], userPassword); err != nil {
			return err
		}
		fmt.Printf("Password updated for %s\n", args[0])
		return nil
	},
}

var userRemoveCmd = &cobra.Command{
	Use:   "rm <username>",
	Short: "Delete a login account and its sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		user, err := repo.GetUserByUsername(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteAllSessionsForUser(user.ID); err != nil {
			return err
		}
		if err := repo.DeleteUser(user.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", user.Username)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Password for the new account")
	userAddCmd.Flags().StringVar(&userRole, "role", "volunteer", "Account role (admin, lead, employee, volunteer, client)")
	userAddCmd.Flags().StringVar(&userDisplayName, "display-name", "", "Display name")
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userAddCmd.MarkFlagRequired("password")

	userPasswdCmd.Flags().StringVar(&userPassword, "password", "", "New password")
	userPasswdCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userPasswdCmd)
	userCmd.AddCommand(userRemoveCmd)
	rootCmd.AddCommand(userCmd)
}
