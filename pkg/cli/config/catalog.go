package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/catalog"
	domainConfig "github.com/secmon-lab/qrisk/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags selecting the question catalog and the report profile
type Catalog struct {
	ref         string
	profilePath string
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Catalog name (short, deep) or path to a catalog TOML file",
			Category:    "Catalog",
			Value:       catalog.Short,
			Destination: &x.ref,
			Sources:     cli.EnvVars("QRISK_CATALOG"),
		},
		&cli.StringFlag{
			Name:        "report-profile",
			Usage:       "Path to a report profile TOML file (embedded profile if empty)",
			Category:    "Catalog",
			Destination: &x.profilePath,
			Sources:     cli.EnvVars("QRISK_REPORT_PROFILE"),
		},
	}
}

func (x Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("catalog", x.ref),
		slog.String("report_profile", x.profilePath),
	)
}

// Configure loads and validates the selected catalog
func (x *Catalog) Configure() (*domainConfig.Catalog, error) {
	if x.ref == "" {
		return nil, goerr.Wrap(ErrMissingCatalogName, "no catalog selected")
	}
	c, err := catalog.Resolve(x.ref)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V(CatalogKey, x.ref))
	}
	return c, nil
}

// Profile loads the report profile
func (x *Catalog) Profile() (*domainConfig.ReportProfile, error) {
	if x.profilePath == "" {
		p, err := catalog.DefaultReportProfile()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load embedded report profile")
		}
		return p, nil
	}

	p, err := catalog.LoadReportProfile(x.profilePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load report profile", goerr.V(PathKey, x.profilePath))
	}
	return p, nil
}
