package cli

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/cli/config"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/scoring"
	"github.com/urfave/cli/v3"
)

func cmdScore(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var responsesPath string
	var output string

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "responses",
			Aliases:     []string{"r"},
			Usage:       "Response file (JSON or YAML)",
			Required:    true,
			Destination: &responsesPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output format (json, text)",
			Value:       outputText,
			Destination: &output,
		},
	)

	return &cli.Command{
		Name:  "score",
		Usage: "Score a response file without storing it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			rs, err := loadResponses(responsesPath)
			if err != nil {
				return err
			}

			result, err := scoring.New(catalog).Evaluate(rs)
			if err != nil {
				if faults := model.FaultsOf(err); len(faults) > 0 {
					printFaults(w, faults)
				}
				return goerr.Wrap(err, "failed to score responses", goerr.V("path", responsesPath))
			}

			if output == outputJSON {
				return printJSON(w, result)
			}
			printResult(w, catalog, result)
			return nil
		},
	}
}
