package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"trainingcal/internal/ics"
	appLog "trainingcal/internal/log"
	"trainingcal/internal/model"
)

// File is the on-disk catalog layout: the flat collections plus optional
// iCalendar files whose events are added as sessions.
type File struct {
	model.Catalog `yaml:",inline"`

	// Imports are .ics paths, relative to the catalog file.
	Imports []string `yaml:"imports,omitempty"`
}

// LoadOptions controls catalog loading.
type LoadOptions struct {
	// MaxOccurrences caps recurrence expansion per session.
	MaxOccurrences int
}

// Load reads the catalog at path, merges its ICS imports and expands
// recurring sessions. Problems with single sessions are logged and do not
// fail the load; an unreadable catalog or import does.
func Load(path string, opts LoadOptions) (*model.Catalog, error) {
	if path == "" {
		return nil, errors.New("catalog path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Decode(data, filepath.Dir(path), opts)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a catalog YAML document. baseDir resolves relative import
// paths.
func Decode(data []byte, baseDir string, opts LoadOptions) (*model.Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	for _, imp := range f.Imports {
		p := imp
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		body, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", imp, err)
		}
		sessions, err := ics.ParseSessions(imp, body)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", imp, err)
		}
		appLog.Debug("catalog import merged", "import", imp, "sessions", len(sessions))
		f.Sessions = append(f.Sessions, sessions...)
	}

	res := ExpandRecurring(f.Sessions, opts.MaxOccurrences)
	for _, err := range res.Errors {
		appLog.Warn("recurring session not expanded", "reason", err.Error())
	}
	for _, id := range res.Truncated {
		appLog.Warn("recurring session truncated", "session", id, "cap", opts.MaxOccurrences)
	}
	f.Sessions = res.Sessions

	c := f.Catalog
	return &c, nil
}
