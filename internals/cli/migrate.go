package cli

import (
	"github.com/spf13/cobra"

	database "iescms_backend/internals/databases"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create/update tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.ConnectDB(opts.Cfg.DB, opts.Log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			opts.Log.Info("✅ migrate done")
			return nil
		},
	}
}
