// filepath: internal/cli/access.go
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"woodbank/internal/auth"

	"github.com/spf13/cobra"
)

var accessCmd = &cobra.Command{
	Use:   "access",
	Short: "Inspect the role permission matrix",
}

var accessCheckCmd = &cobra.Command{
	Use:   "check <role> <permission>",
	Short: "Check whether a role holds a permission",
	Long:  `Evaluates one role/permission pair. Unknown roles are denied everything.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, name := args[0], args[1]
		perm, ok := auth.ParsePermission(name)
		if !ok {
			return fmt.Errorf("unknown permission %q (see 'woodbank access matrix')", name)
		}
		if auth.HasPermission(role, perm) {
			fmt.Printf("%s: granted %s\n", auth.RoleDisplayName(role), perm.Description())
			return nil
		}
		fmt.Printf("%s: denied %s\n", auth.RoleDisplayName(role), perm.Description())
		return nil
	},
}

var accessMatrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the full role/permission matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

		fmt.Fprint(w, "PERMISSION")
		for _, role := range auth.Roles {
			fmt.Fprintf(w, "\t%s", auth.RoleDisplayName(string(role)))
		}
		fmt.Fprintln(w)

		for _, perm := range auth.Permissions {
			fmt.Fprint(w, perm.String())
			for _, role := range auth.Roles {
				mark := "-"
				if auth.HasPermission(string(role), perm) {
					mark = "x"
				}
				fmt.Fprintf(w, "\t%s", mark)
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func init() {
	accessCmd.AddCommand(accessCheckCmd)
	accessCmd.AddCommand(accessMatrixCmd)
	rootCmd.AddCommand(accessCmd)
}
