// Package config handles loading and validation of the action configuration.
//
// Settings come from the environment, with defaults declared in struct tags.
// The label taxonomy and comment template may be overridden by an optional
// YAML file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/xrpdonation/donation-action/pkg/donation"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no --config flag is given and the file exists.
const DefaultConfigPath = ".github/donation.yml"

const repositoryParts = 2

var (
	errConfigNotFound     = errors.New("config file not found")
	errInvalidRepository  = errors.New("repository must be in owner/name format")
	errGraphQLURLRequired = errors.New("GraphQL endpoint URL is required")
	errSiteURLRequired    = errors.New("donation site URL is required")
	errInvalidURL         = errors.New("invalid URL")
	errPrefixRequired     = errors.New("taxonomy label_prefix is required")
	errMarkerRequired     = errors.New("taxonomy markers are required")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errConfigNotFound
	// ErrInvalidRepository is returned when the repository slug is malformed.
	ErrInvalidRepository = errInvalidRepository
)

// Settings holds the environment driven settings.
type Settings struct {
	Repository      string        `env:"GITHUB_REPOSITORY" env-default:""`
	GraphQLURL      string        `env:"GITHUB_GRAPHQL_URL" env-default:"https://api.github.com/graphql"`
	APIURL          string        `env:"GITHUB_API_URL" env-default:"https://api.github.com"`
	DonationSiteURL string        `env:"DONATION_SITE_URL" env-default:"https://xrpdonation.app/donate"`
	HTTPTimeout     time.Duration `env:"DONATION_HTTP_TIMEOUT" env-default:"30s"`
	Token           string        `env:"GITHUB_TOKEN" env-default:""`
}

// LabelStyle is the appearance of a donation label created by the labels command.
type LabelStyle struct {
	Color       string `yaml:"color"`
	Description string `yaml:"description"`
}

// File is the optional YAML configuration.
type File struct {
	Taxonomy        donation.Taxonomy             `yaml:"taxonomy"`
	CommentTemplate string                        `yaml:"comment_template"`
	LabelStyles     map[donation.Stage]LabelStyle `yaml:"label_styles"`
}

// Config is the complete configuration of a run.
type Config struct {
	Settings
	File
}

// LoadSettings reads the settings from the environment.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &s, nil
}

// LoadFile parses the YAML file at path. An empty path reads
// DefaultConfigPath when it exists and falls back to defaults otherwise.
func LoadFile(path string) (*File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	// #nosec G304 - the path is chosen by the workflow author
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			f := &File{}
			f.applyDefaults()
			return f, nil
		}
		return nil, fmt.Errorf("%w: %s", errConfigNotFound, path)
	}

	return ParseFile(data)
}

// ParseFile parses YAML configuration content and applies defaults.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	f.applyDefaults()
	return &f, nil
}

// Load reads the settings and the YAML file, then validates the result.
func Load(path string) (*Config, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Settings: *settings, File: *file}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (f *File) applyDefaults() {
	def := donation.DefaultTaxonomy()
	if f.Taxonomy.LabelPrefix == "" {
		f.Taxonomy.LabelPrefix = def.LabelPrefix
	}
	if f.Taxonomy.TargetMarker == "" {
		f.Taxonomy.TargetMarker = def.TargetMarker
	}
	if f.Taxonomy.FundedMarker == "" {
		f.Taxonomy.FundedMarker = def.FundedMarker
	}
	if f.Taxonomy.AchievedMarker == "" {
		f.Taxonomy.AchievedMarker = def.AchievedMarker
	}

	if f.LabelStyles == nil {
		f.LabelStyles = make(map[donation.Stage]LabelStyle)
	}
	for stage, style := range defaultLabelStyles() {
		current := f.LabelStyles[stage]
		if current.Color == "" {
			current.Color = style.Color
		}
		if current.Description == "" {
			current.Description = style.Description
		}
		f.LabelStyles[stage] = current
	}
}

func defaultLabelStyles() map[donation.Stage]LabelStyle {
	return map[donation.Stage]LabelStyle{
		donation.StageNew:     {Color: "1d76db", Description: "Donation target detected, link posted"},
		donation.StageFunding: {Color: "fbca04", Description: "Donation funded"},
		donation.StageDone:    {Color: "0e8a16", Description: "Donation target achieved"},
	}
}

// Validate checks that all required configuration fields are set.
// The repository slug is optional here: it may be resolved from the local
// checkout later.
func (c *Config) Validate() error {
	if c.GraphQLURL == "" {
		return errGraphQLURLRequired
	}
	if err := validateURL(c.GraphQLURL); err != nil {
		return err
	}
	if c.DonationSiteURL == "" {
		return errSiteURLRequired
	}
	if err := validateURL(c.DonationSiteURL); err != nil {
		return err
	}
	if c.Repository != "" {
		if _, _, err := SplitRepository(c.Repository); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Taxonomy.LabelPrefix) == "" {
		return errPrefixRequired
	}
	if c.Taxonomy.TargetMarker == "" || c.Taxonomy.FundedMarker == "" || c.Taxonomy.AchievedMarker == "" {
		return errMarkerRequired
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidURL, raw)
	}
	return nil
}

// SplitRepository splits an "owner/name" slug.
func SplitRepository(slug string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(slug), "/")
	if len(parts) != repositoryParts || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", errInvalidRepository, slug)
	}
	return parts[0], parts[1], nil
}
