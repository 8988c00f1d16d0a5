// filepath: internal/cli/login.go
package cli

import (
	"fmt"

	"woodbank/internal/auth"
	"woodbank/internal/config"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Verify credentials and issue a session token pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSessionSecret(); err != nil {
			return err
		}

		repo, err := openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		tokens := auth.NewTokenService(cfg, repo, repo)
		accessToken, refreshToken, err := tokens.Login(args[0], loginPassword)
		if err != nil {
			return err
		}

		fmt.Printf("access token:  %s\n", accessToken)
		fmt.Printf("refresh token: %s\n", refreshToken)
		return nil
	},
}

// ensureSessionSecret generates and persists a signing secret on first use.
func ensureSessionSecret() error {
	if cfg.SessionSecret != "" {
		return nil
	}
	log.Info("Generating new random session secret...")
	secret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}
	cfg.Session.Secret = secret
	cfg.SessionSecret = secret
	if err := config.SaveConfig(cfgFile, cfg); err != nil {
		log.Warnf("Failed to save new session secret to %s: %v", cfgFile, err)
	} else {
		log.Infof("New session secret saved to %s.", cfgFile)
	}
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}
