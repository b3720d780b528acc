package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"iescms_backend/internals/configs"
	"iescms_backend/internals/helpers/notify"
)

// RootOptions: state bersama semua subcommand, diisi di PersistentPreRunE.
type RootOptions struct {
	LogLevel string

	Cfg configs.Config
	Log *zap.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "iescms",
		Short: "Church event scheduling & attendance backend",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.Load()
			if err != nil {
				return err
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			log, err := configs.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			opts.Cfg, opts.Log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Log != nil {
				_ = opts.Log.Sync()
			}
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewMaterializeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	return cmd
}

// Execute dipanggil dari main.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// openNotifier: Redis gagal → Nop, publish event cuma best effort.
func openNotifier(ctx context.Context, opts *RootOptions) notify.Publisher {
	p, err := notify.New(ctx, opts.Cfg.RedisURL, opts.Cfg.RedisEventsChannel, opts.Log)
	if err != nil {
		opts.Log.Warn("redis notifier disabled", zap.Error(err))
		return notify.Nop{}
	}
	return p
}
