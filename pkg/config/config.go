// Package config loads the layered JSON configuration: built-in defaults,
// an optional global file, the project file, and CLI overrides, merged in
// that order with per-key provenance so `--debug` runs can report which layer
// set a value.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ProjectFileName is looked up in the working directory unless an explicit
// path is given.
const ProjectFileName = ".pastekit.json"

// GlobalConfigEnv names an optional global configuration file.
const GlobalConfigEnv = "PASTEKIT_CONFIG"

// Document is one configuration layer or the merged result.
type Document map[string]any

// Info records where the merged configuration came from.
type Info struct {
	GlobalConfig string            // path of the global file, if any was read
	ProjectFile  string            // path of the project file, if any was read
	Provenance   map[string]string // flattened key -> layer that set it
}

// Defaults is the built-in base layer.
func Defaults() Document {
	return Document{
		"exclude_dirs":  []any{},
		"exclude_files": []any{},
		"paste": map[string]any{
			"out_dir":           "paste_out",
			"max_lines":         4000,
			"allow_binary":      false,
			"filename_search":   false,
			"blank_lines":       "keep",
			"allow_split":       false,
			"split_chunk_lines": 0,
			"target_files":      0,
			"soft_overflow":     0,
			"single_file":       false,
		},
	}
}

// Load merges all configuration layers. Missing, empty, or malformed files
// are warned about and skipped, never fatal; configuration problems surface
// later as engine behavior, not as load errors.
func Load(projectFile string, overrides Document, logger *zap.Logger) (Document, *Info, error) {
	info := &Info{Provenance: map[string]string{}}
	merged := Document{}

	apply := func(name string, layer Document) {
		merged = deepMerge(merged, layer)
		for key := range flatten(layer, "") {
			info.Provenance[key] = name
		}
	}

	apply("defaults", Defaults())

	if globalPath := os.Getenv(GlobalConfigEnv); globalPath != "" {
		if layer, ok := loadJSON(globalPath, logger); ok {
			info.GlobalConfig = globalPath
			apply("global_config", layer)
		}
	}

	path := projectFile
	if path == "" {
		path = ProjectFileName
	}
	if layer, ok := loadJSON(path, logger); ok {
		info.ProjectFile = path
		apply(path, layer)
	} else if projectFile != "" {
		return nil, nil, fmt.Errorf("config file not usable: %s", projectFile)
	}

	if len(overrides) > 0 {
		apply("cli_overrides", overrides)
	}

	return merged, info, nil
}

// loadJSON reads one configuration file. The boolean reports whether a usable
// document was produced.
func loadJSON(path string, logger *zap.Logger) (Document, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if strings.TrimSpace(string(data)) == "" {
		logger.Warn("Ignoring empty config file", zap.String("path", path))
		return nil, false
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Ignoring invalid JSON config file", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return doc, true
}

// deepMerge merges override into base recursively; maps merge key-wise,
// anything else from the override layer wins.
func deepMerge(base, override Document) Document {
	out := Document{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		bm, bok := asMap(out[k])
		om, ook := asMap(v)
		if bok && ook {
			out[k] = deepMerge(bm, om)
			continue
		}
		out[k] = v
	}
	return out
}

func asMap(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	}
	return nil, false
}

// flatten produces dotted keys for provenance tracking.
func flatten(doc Document, prefix string) map[string]any {
	flat := map[string]any{}
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if m, ok := asMap(v); ok {
			for fk, fv := range flatten(m, key) {
				flat[fk] = fv
			}
			continue
		}
		flat[key] = v
	}
	return flat
}

// Section returns a nested document, or an empty one.
func (d Document) Section(key string) Document {
	if m, ok := asMap(d[key]); ok {
		return m
	}
	return Document{}
}

// String returns a string value or the default.
func (d Document) String(key, def string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return def
}

// Int returns an integer value or the default. JSON numbers arrive as
// float64.
func (d Document) Int(key string, def int) int {
	switch n := d[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return def
}

// Bool returns a boolean value or the default.
func (d Document) Bool(key string, def bool) bool {
	if b, ok := d[key].(bool); ok {
		return b
	}
	return def
}

// StringList returns a list of strings, tolerating mixed []any content.
func (d Document) StringList(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
