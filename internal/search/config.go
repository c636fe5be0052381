package search

import (
	"io"

	"gopkg.in/yaml.v3"
)

// DomainConfig tunes one search domain: which fields are scored, how
// much edit distance a match may carry, how many results survive the
// cut and how many candidate rows are fetched per query.
type DomainConfig struct {
	Fields      []string `yaml:"fields"`
	MaxDistance int      `yaml:"max_distance"`
	MaxResults  int      `yaml:"max_results"`
	FetchLimit  int      `yaml:"fetch_limit"`
}

type Config struct {
	Article   DomainConfig `yaml:"article"`
	Issue     DomainConfig `yaml:"issue"`
	Editorial DomainConfig `yaml:"editorial"`
}

// DefaultConfig returns the tuned production thresholds. Names get a
// tighter distance than long-form text fields.
func DefaultConfig() Config {
	return Config{
		Article: DomainConfig{
			Fields:      []string{"title", "abstract", "authors", "keywords"},
			MaxDistance: 2,
			MaxResults:  5,
			FetchLimit:  100,
		},
		Issue: DomainConfig{
			Fields:      []string{"title", "description", "month", "year"},
			MaxDistance: 2,
			MaxResults:  3,
			FetchLimit:  50,
		},
		Editorial: DomainConfig{
			Fields:      []string{"name", "role", "affiliation"},
			MaxDistance: 1,
			MaxResults:  5,
			FetchLimit:  100,
		},
	}
}

// LoadConfig overlays a YAML document onto the defaults, so a config
// file only needs to name the knobs it changes.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
