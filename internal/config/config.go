// Package config loads the launcher configuration: grid and dock sizes, the
// drawer allowlist, dock defaults and the database path.
//
// Files are YAML, decoded strictly (unknown fields are errors) over
// Default(), then validated against an embedded CUE schema and a few
// cross-field checks the schema does not express.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/homeslot/internal/item"
)

//go:embed schema.cue
var schemaSource string

// Config is the launcher configuration.
type Config struct {
	Grid     GridConfig   `yaml:"grid" json:"grid"`
	Dock     DockConfig   `yaml:"dock" json:"dock"`
	Drawer   DrawerConfig `yaml:"drawer" json:"drawer"`
	Debug    bool         `yaml:"debug" json:"debug"`
	Database string       `yaml:"database" json:"database"`
}

// GridConfig sizes the home grid.
type GridConfig struct {
	Slots   int `yaml:"slots" json:"slots"`
	Columns int `yaml:"columns" json:"columns"`
}

// DockConfig sizes the dock and lists the ids it is seeded with.
type DockConfig struct {
	Capacity int      `yaml:"capacity" json:"capacity"`
	Items    []string `yaml:"items" json:"items"`
}

// DrawerConfig is the allowlist of draggable items, in display order.
type DrawerConfig struct {
	Items []DrawerItem `yaml:"items" json:"items"`
}

// DrawerItem is one allowlisted item.
type DrawerItem struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Default returns the stock launcher configuration: one 3x5 page, a dock
// of four seeded with the three allowlisted apps.
func Default() *Config {
	return &Config{
		Grid: GridConfig{Slots: 15, Columns: 3},
		Dock: DockConfig{
			Capacity: 4,
			Items:    []string{"com.android.settings", "com.ATS.MySlates", "com.adobe.reader"},
		},
		Drawer: DrawerConfig{Items: []DrawerItem{
			{ID: "com.android.settings", Label: "Settings", Icon: "settings"},
			{ID: "com.ATS.MySlates", Label: "MySlates", Icon: "slates"},
			{ID: "com.adobe.reader", Label: "Adobe Reader", Icon: "reader"},
		}},
		Database: "homeslot.db",
	}
}

// Validation error codes.
const (
	ErrCodeSchema      = "C001" // CUE schema violation
	ErrCodeDuplicateID = "C002" // drawer id listed twice
	ErrCodeUnknownDock = "C003" // dock item not in the drawer
)

// ValidationError is one configuration problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every problem found in one configuration.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Load reads and validates the file at path. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default() and validates the result.
// Fields absent from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// Validate checks c against the schema. It returns nil when c is valid.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	errs = append(errs, c.validateSchema()...)

	seen := make(map[string]bool, len(c.Drawer.Items))
	for i, d := range c.Drawer.Items {
		id := item.NormalizeID(d.ID)
		if id == "" {
			continue // reported by the schema
		}
		if seen[id] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("drawer.items[%d].id", i),
				Message: fmt.Sprintf("duplicate drawer id %q", d.ID),
				Code:    ErrCodeDuplicateID,
			})
		}
		seen[id] = true
	}

	for i, id := range c.Dock.Items {
		if id != "" && !seen[item.NormalizeID(id)] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("dock.items[%d]", i),
				Message: fmt.Sprintf("dock item %q is not in the drawer", id),
				Code:    ErrCodeUnknownDock,
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (c *Config) validateSchema() ValidationErrors {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return ValidationErrors{{Field: "schema", Message: err.Error(), Code: ErrCodeSchema}}
	}

	// Encode maps nil slices to null, which no list constraint accepts.
	norm := *c
	if norm.Dock.Items == nil {
		norm.Dock.Items = []string{}
	}
	if norm.Drawer.Items == nil {
		norm.Drawer.Items = []DrawerItem{}
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(norm))
	err := v.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		path := e.Path()
		if len(path) > 0 && path[0] == "#Config" {
			path = path[1:]
		}
		errs = append(errs, ValidationError{
			Field:   strings.Join(path, "."),
			Message: e.Error(),
			Code:    ErrCodeSchema,
		})
	}
	return errs
}
