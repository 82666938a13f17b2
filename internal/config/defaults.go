package config

import (
	"fmt"
	"time"

	"github.com/wizzomafizzo/sortdl/internal/classify"
	"github.com/wizzomafizzo/sortdl/internal/mover"
	"gopkg.in/yaml.v3"
)

const defaultDebounce = 500 * time.Millisecond

// DefaultConfig returns the default sortdl configuration
func DefaultConfig() *Config {
	groups := classify.DefaultGroups()
	return &Config{
		Folders: Folders{
			Music:        string(classify.Music),
			Applications: string(classify.Applications),
			Schoolwork:   string(classify.Schoolwork),
			Misc:         string(classify.MiscDocs),
			Images:       string(classify.Images),
			Videos:       string(classify.Videos),
		},
		Extensions: Extensions{
			Audio:       groups.Audio,
			Video:       groups.Video,
			Image:       groups.Image,
			Document:    groups.Document,
			Application: groups.Application,
			Archive:     groups.Archive,
		},
		SchoolworkPattern: classify.DefaultSchoolworkPattern,
		Collision:         string(mover.RenameIncoming),
		Ignore:            []string{".crdownload", ".part", ".partial", ".download"},
		Debounce:          defaultDebounce,
		Recursive:         true,
		Journal:           true,
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
}

// DefaultConfigYAML returns the default configuration as YAML bytes
func DefaultConfigYAML() ([]byte, error) {
	config := DefaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config to YAML: %w", err)
	}
	return data, nil
}
