package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/cli/config"
	"github.com/secmon-lab/qrisk/pkg/scoring"
	"github.com/secmon-lab/qrisk/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var responsesPath string

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "responses",
		Aliases:     []string{"r"},
		Usage:       "Response file (JSON or YAML) to validate against the catalog",
		Destination: &responsesPath,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a catalog and optionally a response file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}
			if _, err := catalogCfg.Profile(); err != nil {
				return goerr.Wrap(err, "report profile validation failed")
			}

			logger.Info("Catalog validation passed",
				"name", catalog.Name,
				"version", catalog.Version,
			)
			_, _ = fmt.Fprintf(w, "%s %s: %d categories, %d questions (%d scored), %d tiers\n",
				catalog.Name, catalog.Version,
				len(catalog.Categories), len(catalog.Questions),
				len(catalog.AllScoredQuestions()), len(catalog.Tiers))

			if responsesPath == "" {
				return nil
			}

			rs, err := loadResponses(responsesPath)
			if err != nil {
				return err
			}

			result := scoring.New(catalog).Validate(rs)
			if result.Valid() {
				_, _ = fmt.Fprintf(w, "%s: valid\n", responsesPath)
				return nil
			}

			_, _ = fmt.Fprintf(w, "%s: %d fault(s)\n", responsesPath, len(result.Faults))
			printFaults(w, result.Faults)
			return result.Err()
		},
	}
}
