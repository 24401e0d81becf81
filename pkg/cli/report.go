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

func cmdReport(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var archiveCfg config.Archive
	var id string
	var organization string

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, archiveCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Assessment ID",
			Required:    true,
			Destination: &id,
		},
		&cli.StringFlag{
			Name:        "organization",
			Usage:       "Organization name shown in the report (overrides the stored name)",
			Destination: &organization,
		},
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Build the executive report content of an assessment",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}
			profile, err := catalogCfg.Profile()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			archive, closeArchive, err := archiveCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeArchive()

			opts := []usecase.Option{usecase.WithReportProfile(profile)}
			if archive != nil {
				opts = append(opts, usecase.WithArchive(archive))
			}
			uc := usecase.New(repo, catalog, opts...)

			report, err := uc.Report.Build(ctx, model.AssessmentID(id), organization)
			if err != nil {
				return goerr.Wrap(err, "failed to build report")
			}

			if archive != nil {
				location, err := uc.Report.Archive(ctx, report)
				if err != nil {
					return err
				}
				logging.From(ctx).Info("Report archived", "location", location)
			}

			return printJSON(w, report)
		},
	}
}
