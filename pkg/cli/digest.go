package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/cli/config"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"github.com/secmon-lab/qrisk/pkg/usecase"
	"github.com/secmon-lab/qrisk/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdDigest(w io.Writer) *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var id string
	var output string

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Assessment ID",
			Required:    true,
			Destination: &id,
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
		Name:  "digest",
		Usage: "Describe the stored answers of an assessment per category",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateOutput(output); err != nil {
				return err
			}

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
			digest, err := uc.Report.Digest(ctx, model.AssessmentID(id))
			if err != nil {
				return goerr.Wrap(err, "failed to build digest")
			}

			if output == outputJSON {
				return printJSON(w, digest)
			}
			printDigest(w, digest)
			return nil
		},
	}
}

func printDigest(w io.Writer, d *usecase.Digest) {
	heading := color.New(color.Bold)
	muted := color.New(color.Faint)

	for _, cat := range d.Categories {
		_, _ = heading.Fprintln(w, cat.Name)
		for _, ans := range cat.Answers {
			_, _ = fmt.Fprintf(w, "  %s\n", ans.Question)
			if ans.Answered {
				_, _ = fmt.Fprintf(w, "    %s\n", ans.Answer)
			} else {
				_, _ = muted.Fprintf(w, "    %s\n", ans.Answer)
			}
		}
	}
}
