// Package yaml loads the viewer configuration file.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/mdview"
	"gopkg.in/yaml.v3"
)

// Settings is a decoded configuration.
type Settings struct {
	Options    mdview.Options
	Theme      mdview.Theme
	Hyperlinks bool
}

// DefaultSettings returns the settings used without a config file.
func DefaultSettings() Settings {
	return Settings{
		Options:    mdview.DefaultOptions(),
		Theme:      mdview.DefaultTheme(),
		Hyperlinks: true,
	}
}

type file struct {
	Indentation       *int    `yaml:"indentation"`
	MaxImageWidth     *int    `yaml:"max_image_width"`
	DefaultWidth      *int    `yaml:"default_width"`
	AltTextOnHover    *bool   `yaml:"alt_text_on_hover"`
	ExplicitURIScheme *bool   `yaml:"explicit_uri_scheme"`
	ImplicitURIScheme *string `yaml:"implicit_uri_scheme"`
	Hyperlinks        *bool   `yaml:"hyperlinks"`

	SyntaxTheme struct {
		Light string `yaml:"light"`
		Dark  string `yaml:"dark"`
	} `yaml:"syntax_theme"`

	// ReplaceAlerts drops the built-in alerts before adding Alerts.
	ReplaceAlerts bool    `yaml:"replace_alerts"`
	Alerts        []alert `yaml:"alerts"`

	Theme struct {
		Accent *int  `yaml:"accent"`
		Muted  *int  `yaml:"muted"`
		Link   *int  `yaml:"link"`
		Code   *int  `yaml:"code"`
		Quote  *int  `yaml:"quote"`
		Focus  *int  `yaml:"focus"`
		Rule   *int  `yaml:"rule"`
		Error  *int  `yaml:"error"`
		Dark   *bool `yaml:"dark"`
	} `yaml:"theme"`
}

type alert struct {
	Identifier string `yaml:"identifier"`
	Name       string `yaml:"name"`
	Color      string `yaml:"color"`
	Icon       string `yaml:"icon"`
}

// Load reads the config file at path. Errors for a missing file wrap
// fs.ErrNotExist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("load config: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a config document over DefaultSettings. Unknown keys are
// rejected.
func Parse(data []byte) (Settings, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode: %w", err)
	}

	s := DefaultSettings()
	o := &s.Options
	setInt(&o.IndentationSpaces, f.Indentation)
	setInt(&o.MaxImageWidth, f.MaxImageWidth)
	setInt(&o.DefaultWidth, f.DefaultWidth)
	setBool(&o.ShowAltTextOnHover, f.AltTextOnHover)
	setBool(&o.UseExplicitURIScheme, f.ExplicitURIScheme)
	if f.ImplicitURIScheme != nil {
		o.DefaultImplicitURIScheme = *f.ImplicitURIScheme
	}
	setBool(&s.Hyperlinks, f.Hyperlinks)
	if f.SyntaxTheme.Light != "" {
		o.SyntaxTheme.Light = f.SyntaxTheme.Light
	}
	if f.SyntaxTheme.Dark != "" {
		o.SyntaxTheme.Dark = f.SyntaxTheme.Dark
	}

	alerts, err := f.alerts()
	if err != nil {
		return Settings{}, err
	}
	o.Alerts = alerts

	t := &s.Theme
	for _, c := range []struct {
		dst  *int
		src  *int
		name string
	}{
		{&t.Accent, f.Theme.Accent, "accent"},
		{&t.Muted, f.Theme.Muted, "muted"},
		{&t.Link, f.Theme.Link, "link"},
		{&t.Code, f.Theme.Code, "code"},
		{&t.Quote, f.Theme.Quote, "quote"},
		{&t.Focus, f.Theme.Focus, "focus"},
		{&t.Rule, f.Theme.Rule, "rule"},
		{&t.Error, f.Theme.Error, "error"},
	} {
		if c.src != nil && *c.src > 255 {
			return Settings{}, fmt.Errorf("theme %s: color index %d out of range: %w", c.name, *c.src, mdview.ErrValidation)
		}
		setInt(c.dst, c.src)
	}
	setBool(&t.Dark, f.Theme.Dark)

	if err := o.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (f file) alerts() (mdview.AlertBundle, error) {
	var alerts []mdview.Alert
	if !f.ReplaceAlerts {
		alerts = mdview.DefaultAlerts().Alerts()
	}
	for _, a := range f.Alerts {
		color, err := parseColor(a.Color)
		if err != nil {
			return mdview.AlertBundle{}, fmt.Errorf("alert %q: %w", a.Identifier, err)
		}
		name := a.Name
		if name == "" {
			name = a.Identifier
		}
		alerts = append(alerts, mdview.Alert{
			Identifier: a.Identifier,
			Name:       name,
			Accent:     color,
			Icon:       a.Icon,
		})
	}
	return mdview.NewAlertBundle(alerts...), nil
}

// parseColor parses a #rrggbb color.
func parseColor(s string) (mdview.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return mdview.Color{}, fmt.Errorf("color %q is not #rrggbb: %w", s, mdview.ErrValidation)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mdview.Color{}, fmt.Errorf("color %q is not #rrggbb: %w", s, mdview.ErrValidation)
	}
	return mdview.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst, src *bool) {
	if src != nil {
		*dst = *src
	}
}
