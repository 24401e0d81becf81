// Package catalog loads question catalogs and report profiles from TOML.
// The default catalogs are embedded into the binary.
package catalog

import (
	"bytes"
	"embed"
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/model/config"
)

//go:embed defaults/*.toml
var defaults embed.FS

const (
	// Short is the 11-question raw-points catalog
	Short = "short"
	// Deep is the 48-question weighted-category catalog
	Deep = "deep"

	reportProfilePath = "defaults/report.toml"
)

// Names returns the names of the embedded catalogs
func Names() []string {
	return []string{Short, Deep}
}

// IsDefault reports whether name refers to an embedded catalog
func IsDefault(name string) bool {
	return slices.Contains(Names(), name)
}

// Default loads and validates an embedded catalog by name
func Default(name string) (*config.Catalog, error) {
	if !IsDefault(name) {
		return nil, goerr.Wrap(ErrUnknownCatalog, "no embedded catalog with the name", goerr.V(NameKey, name))
	}

	data, err := defaults.ReadFile("defaults/" + name + ".toml")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read embedded catalog", goerr.V(NameKey, name))
	}
	return Parse(data)
}

// Load loads and validates a catalog from a TOML file
func Load(path string) (*config.Catalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrCatalogNotFound, "catalog file not found", goerr.V(PathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V(PathKey, path))
	}

	c, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V(PathKey, path))
	}
	return c, nil
}

// Resolve loads an embedded catalog when ref is one of its names, otherwise a catalog file
func Resolve(ref string) (*config.Catalog, error) {
	if IsDefault(ref) {
		return Default(ref)
	}
	return Load(ref)
}

// Parse decodes and validates a TOML catalog
func Parse(data []byte) (*config.Catalog, error) {
	var f catalogFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog")
	}

	c := f.toDomain()
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V(NameKey, c.Name))
	}
	return c, nil
}

// DefaultReportProfile loads the embedded report profile
func DefaultReportProfile() (*config.ReportProfile, error) {
	data, err := defaults.ReadFile(reportProfilePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read embedded report profile")
	}
	return ParseReportProfile(data)
}

// LoadReportProfile loads a report profile from a TOML file
func LoadReportProfile(path string) (*config.ReportProfile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report profile", goerr.V(PathKey, path))
	}
	return ParseReportProfile(data)
}

// ParseReportProfile decodes and validates a TOML report profile
func ParseReportProfile(data []byte) (*config.ReportProfile, error) {
	var f reportProfileFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML report profile")
	}

	p := f.toDomain()
	if err := p.Validate(); err != nil {
		return nil, goerr.Wrap(err, "report profile validation failed")
	}
	return p, nil
}

func decodeStrict(data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
