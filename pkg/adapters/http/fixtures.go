package http

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/javelin/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Fixture describes one canned route of the envelope server.
type Fixture struct {
	Method    string           `yaml:"method" json:"method"`
	Path      string           `yaml:"path" json:"path"`
	Status    int              `yaml:"status" json:"status"`
	Delay     string           `yaml:"delay" json:"delay"`
	Echo      bool             `yaml:"echo" json:"echo"`
	Raw       *string          `yaml:"raw" json:"raw"`
	Error     any              `yaml:"error" json:"error"`
	Payload   any              `yaml:"payload" json:"payload"`
	Metadata  map[string]any   `yaml:"metadata" json:"metadata"`
	Behaviors map[string][]any `yaml:"behaviors" json:"behaviors"`
	Onload    []any            `yaml:"onload" json:"onload"`

	delay time.Duration
}

// FixtureFile represents the structure of a routes file.
type FixtureFile struct {
	Routes []Fixture `yaml:"routes" json:"routes"`
}

// LoadFixtures reads a routes file (YAML or JSON, chosen by extension).
func LoadFixtures(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var file FixtureFile
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	for i := range file.Routes {
		if err := file.Routes[i].normalize(); err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
	}
	return file.Routes, nil
}

func (f *Fixture) normalize() error {
	if f.Path == "" || !strings.HasPrefix(f.Path, "/") {
		return fmt.Errorf("path %q must start with /", f.Path)
	}
	f.Method = strings.ToUpper(f.Method)
	if f.Method != "" && !domain.Method(f.Method).Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, f.Method)
	}
	if f.Status == 0 {
		f.Status = 200
	}
	if f.Delay != "" {
		d, err := time.ParseDuration(f.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay: %w", err)
		}
		f.delay = d
	}
	return nil
}

// Envelope builds the response envelope for the fixture. The echo payload, if
// any, replaces the configured payload.
func (f *Fixture) Envelope(echo map[string]string) (*domain.Envelope, error) {
	env := &domain.Envelope{
		Error:     f.Error,
		Payload:   f.Payload,
		Metadata:  f.Metadata,
		Behaviors: f.Behaviors,
	}
	if f.Echo {
		env.Payload = echo
	}
	if len(f.Onload) > 0 {
		data, err := json.Marshal(f.Onload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode onload: %w", err)
		}
		if err := json.Unmarshal(data, &env.Onload); err != nil {
			return nil, err
		}
	}
	return env, nil
}
