package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/sortdl/internal/classify"
	"github.com/wizzomafizzo/sortdl/internal/mover"
	"github.com/wizzomafizzo/sortdl/internal/storage"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidPolicy is returned for an unknown collision policy.
	ErrInvalidPolicy = errors.New("invalid collision policy")
	// ErrInvalidFolder is returned for an empty, nested or duplicate folder name.
	ErrInvalidFolder = errors.New("invalid folder name")
)

type Config struct {
	Root              string        `yaml:"root,omitempty"`
	Folders           Folders       `yaml:"folders"`
	Extensions        Extensions    `yaml:"extensions"`
	SchoolworkPattern string        `yaml:"schoolwork_pattern"`
	Collision         string        `yaml:"collision"`
	Ignore            []string      `yaml:"ignore"`
	Logging           LoggingConfig `yaml:"logging"`
	Debounce          time.Duration `yaml:"debounce"`
	Recursive         bool          `yaml:"recursive"`
	Journal           bool          `yaml:"journal"`
}

// Folders names the destination directory of each category, relative to the root.
type Folders struct {
	Music        string `yaml:"music"`
	Applications string `yaml:"applications"`
	Schoolwork   string `yaml:"schoolwork"`
	Misc         string `yaml:"misc"`
	Images       string `yaml:"images"`
	Videos       string `yaml:"videos"`
}

type Extensions struct {
	Audio       []string `yaml:"audio"`
	Video       []string `yaml:"video"`
	Image       []string `yaml:"image"`
	Document    []string `yaml:"document"`
	Application []string `yaml:"application"`
	Archive     []string `yaml:"archive"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Load reads the config file at path through fs. A missing file yields
// the defaults; a present file is decoded over the defaults.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads config from YAML bytes over the defaults
func LoadFromYAML(data []byte) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs comprehensive config validation
func (c *Config) Validate() error {
	if _, err := mover.ParsePolicy(c.Collision); err != nil {
		return fmt.Errorf("%w %q: must be one of: incoming, existing", ErrInvalidPolicy, c.Collision)
	}

	if _, err := regexp.Compile(c.SchoolworkPattern); err != nil {
		return fmt.Errorf("invalid schoolwork pattern '%s': %w", c.SchoolworkPattern, err)
	}

	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}

	seen := make(map[string]classify.Category, len(classify.AllCategories))
	for category, name := range c.Folders.byCategory() {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%w %q for %s", ErrInvalidFolder, name, category)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%w %q: used by both %s and %s", ErrInvalidFolder, name, other, category)
		}
		seen[name] = category
	}

	if _, err := c.ResolveRoot(); err != nil {
		return err
	}

	return nil
}

// Policy returns the parsed collision policy.
func (c *Config) Policy() mover.Policy {
	policy, err := mover.ParsePolicy(c.Collision)
	if err != nil {
		return mover.RenameIncoming
	}
	return policy
}

// ResolveRoot returns the absolute watched root. An empty root means the
// user's downloads directory and a leading "~" expands to the home directory.
func (c *Config) ResolveRoot() (string, error) {
	root := c.Root
	switch {
	case root == "":
		root = storage.DownloadsDir()
	case root == "~":
		root = xdg.Home
	case strings.HasPrefix(root, "~/"):
		root = filepath.Join(xdg.Home, root[2:])
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", c.Root, err)
	}
	return abs, nil
}

// Rules compiles the classifier input. Call Validate first.
func (c *Config) Rules() (classify.Rules, error) {
	pattern, err := regexp.Compile(c.SchoolworkPattern)
	if err != nil {
		return classify.Rules{}, fmt.Errorf("invalid schoolwork pattern '%s': %w", c.SchoolworkPattern, err)
	}

	return classify.Rules{
		Groups: classify.Groups{
			Audio:       c.Extensions.Audio,
			Video:       c.Extensions.Video,
			Image:       c.Extensions.Image,
			Document:    c.Extensions.Document,
			Application: c.Extensions.Application,
			Archive:     c.Extensions.Archive,
		},
		Schoolwork: pattern,
	}, nil
}

// Layout resolves the root and destination folders.
func (c *Config) Layout() (Layout, error) {
	root, err := c.ResolveRoot()
	if err != nil {
		return Layout{}, err
	}
	return NewLayout(root, c.Folders.byCategory()), nil
}

func (f Folders) byCategory() map[classify.Category]string {
	return map[classify.Category]string{
		classify.Music:        f.Music,
		classify.Applications: f.Applications,
		classify.Schoolwork:   f.Schoolwork,
		classify.MiscDocs:     f.Misc,
		classify.Images:       f.Images,
		classify.Videos:       f.Videos,
	}
}
