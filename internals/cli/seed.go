package cli

import (
	"github.com/spf13/cobra"

	database "iescms_backend/internals/databases"
	"iescms_backend/internals/seeds"
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample schedules from a JSON file (existing names are skipped)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.ConnectDB(opts.Cfg.DB, opts.Log)
			if err != nil {
				return err
			}
			defer database.Close(db)
			return seeds.RunAllSeeds(cmd.Context(), db, file, opts.Log)
		},
	}
	cmd.Flags().StringVar(&file, "file", seeds.DefaultSchedulesFile, "path to schedules JSON")
	return cmd
}
