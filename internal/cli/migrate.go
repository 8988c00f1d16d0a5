// filepath: internal/cli/migrate.go
package cli

import (
	"fmt"

	"woodbank/internal/repository"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tools",
	Long:  `Manage the database schema version. Use subcommands 'up' or 'status'.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Migrate the database to the most recent version",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.RunMigrations(); err != nil {
			return err
		}
		version, err := repo.SchemaVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Schema at version %d\n", version)
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current and latest schema versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		version, err := repo.SchemaVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Current version: %d\n", version)
		fmt.Printf("Latest version:  %d\n", repository.LatestSchemaVersion)
		if version < repository.LatestSchemaVersion {
			fmt.Printf("%d migration(s) pending. Run 'woodbank migrate up'.\n", repository.LatestSchemaVersion-version)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
