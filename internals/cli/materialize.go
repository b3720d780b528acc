package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "iescms_backend/internals/databases"
	"iescms_backend/internals/features/attendance/events/scheduler"
	"iescms_backend/internals/helpers/dbtime"
	routes "iescms_backend/internals/route"
)

type MaterializeOptions struct {
	*RootOptions
	ScheduleID string
	Strict     bool
	All        bool
}

// materialize: jalankan CreateNextEvents dari CLI (satu schedule atau semua).
func NewMaterializeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MaterializeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Create the next events for one schedule (or all with --all)",
		Example: `  iescms materialize --schedule 3f0c...
  iescms materialize --schedule 3f0c... --strict
  iescms materialize --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.ScheduleID, "schedule", "", "schedule id")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail with a conflict when a date was already materialized")
	cmd.Flags().BoolVar(&opts.All, "all", false, "run over every schedule (non-strict)")
	cmd.MarkFlagsMutuallyExclusive("schedule", "all")
	cmd.MarkFlagsOneRequired("schedule", "all")
	return cmd
}

func runMaterialize(cmd *cobra.Command, opts *MaterializeOptions) error {
	ctx := cmd.Context()

	var id uuid.UUID
	if !opts.All {
		parsed, err := uuid.Parse(opts.ScheduleID)
		if err != nil {
			return fmt.Errorf("invalid --schedule: %w", err)
		}
		id = parsed
	}

	db, err := database.ConnectDB(opts.Cfg.DB, opts.Log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	notifier := openNotifier(ctx, opts.RootOptions)
	defer notifier.Close()

	svc := routes.NewServices(db, opts.Cfg, opts.Log, notifier)

	if opts.All {
		m := &scheduler.AutoMaterializer{Schedules: svc.ScheduleRepo, Events: svc.Events, Log: opts.Log}
		res, err := m.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schedules=%d created=%d skipped=%d failed=%d\n",
			res.Schedules, res.Created, res.Skipped, res.Failed)
		return nil
	}

	created, err := svc.Events.CreateNextEvents(ctx, id, opts.Strict)
	for _, e := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.ChurchEventID, e.ChurchEventDate.Format(dbtime.DateLayout), e.ChurchEventName)
	}
	if err != nil {
		opts.Log.Error("materialize failed", zap.String("schedule_id", id.String()), zap.Error(err))
		return err
	}
	if len(created) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no new events")
	}
	return nil
}
