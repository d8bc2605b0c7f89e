package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// Documents is the result of loading a configuration directory
type Documents struct {
	Layouts []model.LayoutConfig
	Tenants []model.TenantConfig
}

// LayoutByID returns the layout with the given id
func (d *Documents) LayoutByID(id string) (model.LayoutConfig, bool) {
	for _, layout := range d.Layouts {
		if layout.ID == id {
			return layout, true
		}
	}
	return model.LayoutConfig{}, false
}

// TenantByID returns the tenant with the given id
func (d *Documents) TenantByID(id string) (model.TenantConfig, bool) {
	for _, tenant := range d.Tenants {
		if tenant.ID == id {
			return tenant, true
		}
	}
	return model.TenantConfig{}, false
}

// decode unmarshals data by extension into out
func decode(path string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".json":
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// LoadDocument reads a single layout or tenant document. The kind is
// inferred from the document shape: tenants carry defaultLayout, layouts
// carry widgets. Invalid documents return an error rather than a partial
// result.
func LoadDocument(path string, docs *Documents) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document %q: %w", path, err)
	}

	var raw map[string]any
	if err := decode(path, data, &raw); err != nil {
		return fmt.Errorf("parse document %q: %w", path, err)
	}

	if _, isTenant := raw["defaultLayout"]; isTenant {
		if !model.ValidateTenant(raw) {
			return fmt.Errorf("document %q is not a valid tenant", path)
		}
		var tenant model.TenantConfig
		if err := decode(path, data, &tenant); err != nil {
			return fmt.Errorf("parse tenant %q: %w", path, err)
		}
		docs.Tenants = append(docs.Tenants, tenant)
		return nil
	}

	if !model.ValidateLayout(raw) {
		return fmt.Errorf("document %q is not a valid layout", path)
	}
	var layout model.LayoutConfig
	if err := decode(path, data, &layout); err != nil {
		return fmt.Errorf("parse layout %q: %w", path, err)
	}
	docs.Layouts = append(docs.Layouts, layout)
	return nil
}

// LoadDirectory reads every *.yaml, *.yml and *.json document under dir.
// Invalid documents are logged and skipped; the rest of the directory
// still loads.
func LoadDirectory(dir string) (*Documents, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read config directory %q: %w", dir, err)
	}

	docs := &Documents{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := LoadDocument(path, docs); err != nil {
			slog.Warn("skipping invalid config document", "path", path, "error", err)
		}
	}
	return docs, nil
}
