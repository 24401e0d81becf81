package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/cli/config"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/usecase"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
	"github.com/secmon-lab/qrisk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdRescore(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var id string
	var reason string
	var concurrency int

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Assessment ID (every outdated assessment of the catalog if omitted)",
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "reason",
			Usage:       "Reason recorded in the rescore history",
			Required:    true,
			Destination: &reason,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Number of assessments rescored in parallel",
			Value:       usecase.DefaultRescoreConcurrency,
			Destination: &concurrency,
		},
	)

	return &cli.Command{
		Name:  "rescore",
		Usage: "Re-score stored assessments against the loaded catalog version",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, catalog)

			if id != "" {
				a, err := uc.Assessment.Rescore(ctx, model.AssessmentID(id), reason)
				if err != nil {
					return goerr.Wrap(err, "failed to rescore assessment")
				}
				return printJSON(w, a.Latest())
			}

			summary, err := uc.Assessment.RescoreAll(ctx, reason, concurrency)
			if err != nil {
				return goerr.Wrap(err, "failed to rescore assessments")
			}
			logging.From(ctx).Info("Rescore completed",
				"rescored", summary.Rescored,
				"skipped", summary.Skipped,
				"failed", summary.Failed)

			if err := printJSON(w, summary); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return goerr.New("some assessments could not be rescored",
					goerr.V("failed", summary.Failed),
					goerr.V("failures", summary.Failures))
			}
			return nil
		},
	}
}
