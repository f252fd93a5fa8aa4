/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"gocanvas/internal/domain"
	"gocanvas/internal/drag"
	"gocanvas/internal/vector"
)

// SchemaID is the $id of the generated schema.
const SchemaID = "https://gocanvas.dev/config.schema.json"

// Schema reflects AppConfig into a JSON schema. Fields are optional because
// missing keys fall back to Defaults.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&AppConfig{})
	s.ID = SchemaID
	s.Title = "gocanvas configuration"
	s.Description = "Settings for the gocanvas editor: canvas seed, gesture thresholds, resize policy, handles, appearance, terminal host and logging"
	return s
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	b, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}

// ValidateDocument checks a decoded settings document (a YAML or JSON file
// unmarshalled into maps) against the schema. Unknown keys are errors.
func ValidateDocument(doc any) error {
	b, err := SchemaJSON()
	if err != nil {
		return err
	}
	var schema map[string]any
	if err := json.Unmarshal(b, &schema); err != nil {
		return fmt.Errorf("decode schema: %w", err)
	}
	// The reflector targets draft 2020-12; only the keywords matter here.
	delete(schema, "$schema")
	delete(schema, "$id")

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	errs := make([]error, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, &FieldError{Field: e.Field(), Msg: e.Description()})
	}
	return errors.Join(errs...)
}

// FieldError is a single validation failure.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Msg }

// Validate checks cfg against the schema and then the rules the schema
// cannot express. All failures are reported together.
func Validate(cfg AppConfig) error {
	doc, err := toDocument(cfg)
	if err != nil {
		return err
	}
	var errs []error
	if err := ValidateDocument(doc); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, semanticErrors(cfg)...)
	return errors.Join(errs...)
}

func toDocument(cfg AppConfig) (map[string]any, error) {
	cfg = cfg.clone()
	if cfg.Canvas.Elements == nil {
		cfg.Canvas.Elements = []ElementConfig{}
	}
	if cfg.Handles.Anchors == nil {
		cfg.Handles.Anchors = []string{}
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return doc, nil
}

func semanticErrors(cfg AppConfig) []error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Msg: fmt.Sprintf(format, args...)})
	}
	if cfg.ConfigVersion > ConfigVersion {
		add("config_version", "version %d is newer than supported %d", cfg.ConfigVersion, ConfigVersion)
	}
	if _, err := drag.ParsePolicy(strings.ToLower(cfg.Resize.Policy)); err != nil {
		add("resize.policy", "%v", err)
	}
	if _, err := domain.ParseAnchors(cfg.Handles.Anchors); err != nil {
		add("handles.anchors", "%v", err)
	}
	colors := []struct{ field, value string }{
		{"canvas.background", cfg.Canvas.Background},
		{"appearance.element_color", cfg.Appearance.ElementColor},
		{"appearance.accent_color", cfg.Appearance.AccentColor},
		{"appearance.overlay_color", cfg.Appearance.OverlayColor},
	}
	for _, c := range colors {
		if _, err := vector.ParseHex(c.value); err != nil {
			add(c.field, "%v", err)
		}
	}
	seen := make(map[int]bool, len(cfg.Canvas.Elements))
	for i, e := range cfg.Canvas.Elements {
		if seen[e.ID] {
			add(fmt.Sprintf("canvas.elements.%d.id", i), "duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}
	if cfg.Handles.HitSize < cfg.Handles.Size {
		add("handles.hit_size", "hit area %g is smaller than the handle %g", cfg.Handles.HitSize, cfg.Handles.Size)
	}
	return errs
}
