package config

import (
	"fmt"
	"slices"

	"github.com/kilianp07/confsched/core/factory"
	"github.com/kilianp07/confsched/pkg/export"
)

// RenderConfig selects the output format and its options, e.g.
//
//	render:
//	  type: html
//	  conf:
//	    title: DevConf 2024
//	    locale: cs_CZ
//	    stylesheets: [styles.css]
type RenderConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// SetDefaults applies sane defaults.
func (c *RenderConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = "html"
	}
}

// Validate checks that the format exists.
func (c RenderConfig) Validate() error {
	if !slices.Contains(export.Formats(), c.Type) {
		return fmt.Errorf("unknown render type %s", c.Type)
	}
	return nil
}

// Module returns the factory configuration of the export writer.
func (c RenderConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: c.Type, Conf: c.Conf}
}
