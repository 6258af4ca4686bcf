package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
	"github.com/jhoicas/gst-invoicing-api/internal/infrastructure/postgres"
)

var nextNumberFlags struct {
	user    string
	factory string
}

var nextNumberCmd = &cobra.Command{
	Use:     "next-number",
	Short:   "Print the suggested next invoice number of a factory",
	Example: `  gstctl next-number --user 3f0c... --factory 9a41...`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := e.openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := billing.NewSequencerUseCase(
			postgres.NewFactoryRepository(pool.Pool),
			postgres.NewInvoiceRepository(pool.Pool),
			billing.NumberingConfig{Seed: e.cfg.Numbering.Seed, AutoRenumber: e.cfg.Numbering.AutoRenumber},
		)
		next, err := uc.NextInvoiceNumber(ctx, nextNumberFlags.user, nextNumberFlags.factory)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	nextNumberCmd.Flags().StringVar(&nextNumberFlags.user, "user", "", "owner user id")
	nextNumberCmd.Flags().StringVar(&nextNumberFlags.factory, "factory", "", "factory id")
	_ = nextNumberCmd.MarkFlagRequired("user")
	_ = nextNumberCmd.MarkFlagRequired("factory")
	rootCmd.AddCommand(nextNumberCmd)
}
