package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qrisk/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

var errUnsupportedResponseFormat = goerr.New("unsupported response file format")

// loadResponses reads a response file. The format is chosen by extension: .json, .yaml or .yml.
func loadResponses(path string) (model.ResponseSet, error) {
	// #nosec G304 - path is provided by CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response file", goerr.V("path", path))
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, goerr.Wrap(err, "failed to decode JSON response file", goerr.V("path", path))
		}
	case ".yaml", ".yml":
		var answers map[string]yamlAnswer
		if err := yaml.Unmarshal(data, &answers); err != nil {
			return nil, goerr.Wrap(err, "failed to decode YAML response file", goerr.V("path", path))
		}
		rs := make(map[string]any, len(answers))
		for k, a := range answers {
			rs[k] = a.value
		}
		raw = rs
	default:
		return nil, goerr.Wrap(errUnsupportedResponseFormat, "use .json, .yaml or .yml", goerr.V("path", path))
	}

	rs, err := model.NewResponseSet(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "response file is not a mapping of answers", goerr.V("path", path))
	}
	return rs, nil
}

// yamlAnswer keeps scalars as written. Option ids such as 25_40 would otherwise resolve to integers.
type yamlAnswer struct {
	value any
}

func (a *yamlAnswer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			a.value = nil
			return nil
		}
		a.value = node.Value
		return nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return goerr.New("multi-choice answers must be a list of option ids", goerr.V("line", item.Line))
			}
			items = append(items, item.Value)
		}
		a.value = items
		return nil

	default:
		return goerr.New("answer must be an option id or a list of option ids", goerr.V("line", node.Line))
	}
}
