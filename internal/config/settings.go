package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gitlab.com/efronlicht/enve"
	"gopkg.in/yaml.v3"

	"github.com/anjirai/weekly-flyers/internal/model"
)

// Environment variables that override file settings.
const (
	EnvRootPath   = "FLYERS_ROOT"
	EnvHTMLPath   = "FLYERS_HTML"
	EnvIdentifier = "FLYERS_IDENTIFIER"
)

// Settings holds all configuration options.
type Settings struct {
	// Paths
	RootPath string `json:"root_path" toml:"root_path" yaml:"root_path"`
	HTMLPath string `json:"html_path" toml:"html_path" yaml:"html_path"`

	// Identifier is the JavaScript variable holding the flyer data.
	Identifier string `json:"identifier" toml:"identifier" yaml:"identifier"`

	// Record text
	TitleFormat string `json:"title_format" toml:"title_format" yaml:"title_format"`
	Description string `json:"description" toml:"description" yaml:"description"`

	// ImageExtensions are matched case-sensitively against the end of the filename.
	ImageExtensions []string `json:"image_extensions" toml:"image_extensions" yaml:"image_extensions"`

	// MaxProbeWorkers limits concurrent image header decoding in diagnostics.
	MaxProbeWorkers int `json:"max_probe_workers" toml:"max_probe_workers" yaml:"max_probe_workers"`
}

// DefaultImageExtensions are the raster formats accepted as flyers.
var DefaultImageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".webp",
	".JPG", ".JPEG", ".PNG", ".GIF", ".WEBP",
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	content := filepath.Join(homeDir, "Website Content")
	return &Settings{
		RootPath:        filepath.Join(content, "images", "ShortStoryFlyer"),
		HTMLPath:        filepath.Join(content, "src", "html", "weeklyMeeting.html"),
		Identifier:      "flyersByYear",
		TitleFormat:     "Weekly Literary Meeting - Session {session}",
		Description:     "Tamil short story analysis and discussion",
		ImageExtensions: append([]string(nil), DefaultImageExtensions...),
		MaxProbeWorkers: 4,
	}
}

// Load reads settings from a file and applies environment overrides.
//
// The format is picked from the extension: .toml, .yaml/.yml, anything else
// is JSON. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			settings.ApplyEnv()
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, settings)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, settings)
	default:
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	settings.ApplyEnv()
	return settings, nil
}

// ApplyEnv overrides paths and identifier from FLYERS_* environment variables.
func (s *Settings) ApplyEnv() {
	s.RootPath = enve.StringOr(EnvRootPath, s.RootPath)
	s.HTMLPath = enve.StringOr(EnvHTMLPath, s.HTMLPath)
	s.Identifier = enve.StringOr(EnvIdentifier, s.Identifier)
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks that the settings can drive a scan and an injection.
func (s *Settings) Validate() error {
	if !identifierPattern.MatchString(s.Identifier) {
		return fmt.Errorf("identifier %q is not a valid JavaScript identifier", s.Identifier)
	}
	if len(s.ImageExtensions) == 0 {
		return fmt.Errorf("image_extensions must not be empty")
	}
	for _, ext := range s.ImageExtensions {
		if ext == "" {
			return fmt.Errorf("image_extensions contains an empty entry")
		}
	}
	if s.RootPath == "" {
		return fmt.Errorf("root_path must be set")
	}
	return nil
}

// ToFlyerConfig converts settings to FlyerConfig.
func (s *Settings) ToFlyerConfig() *model.FlyerConfig {
	return &model.FlyerConfig{
		TitleFormat: s.TitleFormat,
		Description: s.Description,
	}
}
