// Package rules loads token rule files and tokenizes input with them.
//
// A rule file lists named patterns in priority order:
//
//	rules:
//	  - name: ws
//	    pattern: "[ \t\r\n]+"
//	    skip: true
//	  - name: number
//	    pattern: "[0-9]+"
package rules

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/pvto/streamre"
	"github.com/pvto/streamre/internal/logging"
	"github.com/pvto/streamre/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "rules")

var (
	ErrNoRules       = errors.New("no rules defined")
	ErrEmptyName     = errors.New("rule name cannot be empty")
	ErrEmptyPattern  = errors.New("rule pattern cannot be empty")
	ErrDuplicateRule = errors.New("duplicate rule name")
)

// Rule is one named pattern. Tokens of a skip rule are consumed but not
// reported.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Skip    bool   `yaml:"skip,omitempty"`
}

// File is the content of a rule file.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// Parse decodes and validates a rule file.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads the rule file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(logrus.Fields{
		logfields.Path: path,
		"rules":        len(f.Rules),
	}).Debug("Loaded rules")
	return f, nil
}

// Validate checks that there is at least one rule and that every rule has a
// unique name and a pattern that compiles.
func (f *File) Validate() error {
	if len(f.Rules) == 0 {
		return ErrNoRules
	}
	seen := make(map[string]bool, len(f.Rules))
	for i, r := range f.Rules {
		switch {
		case r.Name == "":
			return fmt.Errorf("rule %d: %w", i, ErrEmptyName)
		case r.Pattern == "":
			return fmt.Errorf("rule %q: %w", r.Name, ErrEmptyPattern)
		case seen[r.Name]:
			return fmt.Errorf("rule %q: %w", r.Name, ErrDuplicateRule)
		}
		seen[r.Name] = true
		if _, err := streamre.Compile(r.Pattern); err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
	}
	return nil
}

// Mapper builds the mapper that reads a token of any rule and reports the
// rule. Earlier rules win when several read the same token.
func (f *File) Mapper() (*streamre.Mapper[Rule], error) {
	b := streamre.NewMapper[Rule]()
	for _, r := range f.Rules {
		b.Map(r.Pattern, r)
	}
	return b.Build()
}
