package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hyroxlab/hyrox-data/internal/pipeline"
)

// LoadCorrections returns the event-name correction table. The built-in
// table covers the reference dataset; a YAML file of the form
//
//	corrections:
//	  JGDMS4JI5C9: S6 2023 Munich
//
// is merged over it when path is non-empty, so deployments can extend or
// override individual entries without a rebuild.
func LoadCorrections(path string) (pipeline.Corrections, error) {
	corrections := pipeline.DefaultCorrections()
	if path == "" {
		return corrections, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load corrections file %s: %w", path, err)
	}

	var extra map[string]string
	if err := k.Unmarshal("corrections", &extra); err != nil {
		return nil, fmt.Errorf("parse corrections file %s: %w", path, err)
	}
	for id, name := range extra {
		corrections[id] = name
	}
	return corrections, nil
}
