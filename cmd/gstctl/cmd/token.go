package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/gst-invoicing-api/pkg/jwt"
)

var tokenFlags struct {
	user string
	ttl  int
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a Bearer token for a user id",
	Long: `Sign a token with JWT_SECRET and JWT_ISSUER. Meant for local testing
against an API started with the same settings.`,
	Example: `  gstctl token --user demo-user
  curl -H "Authorization: Bearer $(gstctl token --user demo-user)" localhost:8080/api/factories/demo-factory/dashboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ttl := tokenFlags.ttl
		if ttl <= 0 {
			ttl = e.cfg.JWT.Expiration
		}
		tok, err := pkgjwt.Generate(e.cfg.JWT.Secret, tokenFlags.user, e.cfg.JWT.Issuer, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.user, "user", "", "user id placed in the token")
	tokenCmd.Flags().IntVar(&tokenFlags.ttl, "ttl", 0, "lifetime in minutes (default JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
