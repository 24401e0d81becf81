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

func cmdSubmit(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var responsesPath string
	var organization string

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "responses",
			Aliases:     []string{"r"},
			Usage:       "Response file (JSON or YAML)",
			Required:    true,
			Destination: &responsesPath,
		},
		&cli.StringFlag{
			Name:        "organization",
			Usage:       "Organization name stored with the assessment",
			Destination: &organization,
		},
	)

	return &cli.Command{
		Name:  "submit",
		Usage: "Score a response file and store the assessment",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			rs, err := loadResponses(responsesPath)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, catalog)
			a, err := uc.Assessment.Submit(ctx, organization, rs)
			if err != nil {
				if faults := model.FaultsOf(err); len(faults) > 0 {
					printFaults(w, faults)
				}
				return goerr.Wrap(err, "failed to submit assessment", goerr.V("path", responsesPath))
			}

			logging.From(ctx).Info("Assessment stored", "id", a.ID)
			return printJSON(w, a)
		},
	}
}
