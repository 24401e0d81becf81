package cli

import (
	"context"
	"io"
	"os"

	"github.com/secmon-lab/qrisk/pkg/cli/config"
	"github.com/secmon-lab/qrisk/pkg/utils/errutil"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdout)
}

func run(ctx context.Context, args []string, version string, w io.Writer) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "qrisk",
		Usage:   "Post-quantum cryptography risk scoring for healthcare organizations",
		Version: version,
		Flags:   flags,
		Writer:  w,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closeLog, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, closeLog)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting qrisk", "logger", loggerCfg, "sentry", sentryCfg)
			return logging.With(ctx, logging.Default()), nil
		},
		Commands: []*cli.Command{
			cmdValidate(w),
			cmdScore(w),
			cmdSubmit(w),
			cmdReport(w),
			cmdRescore(w),
			cmdDigest(w),
			cmdMigrate(),
		},
	}

	// closers run after the error is handled so the report reaches the log and Sentry
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}
