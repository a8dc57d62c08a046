package classify

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type rulesDocument struct {
	Rules []Rule `yaml:"rules"`
}

// ParseRules decodes a YAML (or JSON) rules document of the form
// {rules: [{field, fallback, bands: [...]}]} and validates each rule.
func ParseRules(data []byte) ([]Rule, error) {
	var doc rulesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("classify: decode rules: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Rules))
	out := make([]Rule, 0, len(doc.Rules))
	for _, rule := range doc.Rules {
		rule.Field = strings.TrimSpace(rule.Field)
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[rule.Field]; dup {
			return nil, fmt.Errorf("classify: duplicate rule %q", rule.Field)
		}
		seen[rule.Field] = struct{}{}
		out = append(out, rule)
	}
	return out, nil
}

// LoadFS walks fsys for .yaml/.yml/.json rule files and overlays them on the
// built-in rules. A nil fsys returns the defaults.
func LoadFS(fsys fs.FS) (*Table, error) {
	table := DefaultTable()
	if fsys == nil {
		return table, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRulesFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("classify: read %s: %w", path, err)
		}
		rules, err := ParseRules(data)
		if err != nil {
			return fmt.Errorf("classify: %s: %w", path, err)
		}
		for _, rule := range rules {
			if err := table.Replace(rule); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}

// LoadFile overlays a single rules file, or every rules file in a directory,
// on the built-in rules. An empty path returns the defaults.
func LoadFile(path string) (*Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultTable(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("classify: stat rules: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classify: read %s: %w", path, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("classify: %s: %w", path, err)
	}
	table := DefaultTable()
	for _, rule := range rules {
		if err := table.Replace(rule); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func isRulesFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
