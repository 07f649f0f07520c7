package mdview

import (
	"fmt"
	"strings"
)

// Options configures rendering.
type Options struct {
	// IndentationSpaces is the indentation per list level and of definition
	// list bodies.
	IndentationSpaces int
	// MaxImageWidth caps image width. Zero means the available width.
	MaxImageWidth int
	// DefaultWidth is the minimum content width. Zero means none.
	DefaultWidth int
	// ShowAltTextOnHover shows image alt text when hovering an image.
	ShowAltTextOnHover bool
	// UseExplicitURIScheme disables prefixing scheme-less image URIs with
	// DefaultImplicitURIScheme.
	UseExplicitURIScheme bool
	// DefaultImplicitURIScheme is prepended to image URIs without a scheme.
	DefaultImplicitURIScheme string
	// Mutable renders interactive task checkboxes.
	Mutable bool
	// Alerts is the set of recognized alert markers. An empty bundle
	// disables alert detection.
	Alerts AlertBundle
	// SyntaxTheme names the code highlighting themes.
	SyntaxTheme SyntaxTheme
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		IndentationSpaces:        4,
		ShowAltTextOnHover:       true,
		DefaultImplicitURIScheme: "file://",
		Alerts:                   DefaultAlerts(),
		SyntaxTheme:              SyntaxTheme{Light: "github", Dark: "monokai"},
	}
}

// Validate checks the options for values the renderer cannot work with.
func (o Options) Validate() error {
	if o.IndentationSpaces < 0 {
		return fmt.Errorf("indentation spaces must be non-negative, got %d: %w", o.IndentationSpaces, ErrValidation)
	}
	if o.MaxImageWidth < 0 {
		return fmt.Errorf("max image width must be non-negative, got %d: %w", o.MaxImageWidth, ErrValidation)
	}
	if o.DefaultWidth < 0 {
		return fmt.Errorf("default width must be non-negative, got %d: %w", o.DefaultWidth, ErrValidation)
	}
	if !o.UseExplicitURIScheme && o.DefaultImplicitURIScheme == "" {
		return fmt.Errorf("implicit URI scheme must be set unless explicit schemes are used: %w", ErrValidation)
	}
	for _, a := range o.Alerts.Alerts() {
		if strings.TrimSpace(a.Identifier) == "" {
			return fmt.Errorf("alert identifier must not be empty: %w", ErrValidation)
		}
	}
	return nil
}

// maxWidth is the content width for the available space.
func (o Options) maxWidth(available int) int {
	w := max(o.MaxImageWidth, available)
	if o.DefaultWidth > w {
		return o.DefaultWidth
	}
	return w
}

// imageURI applies the implicit scheme to uri when it has none.
func (o Options) imageURI(uri string) string {
	hasScheme := strings.Contains(uri, "://") || strings.HasPrefix(uri, "data:")
	if o.UseExplicitURIScheme || hasScheme {
		return uri
	}
	return o.DefaultImplicitURIScheme + uri
}

// Option configures a Viewer.
type Option func(*Options)

// WithOptions replaces all options, typically with ones loaded from a config
// file.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

// WithIndentation sets the spaces per list level.
func WithIndentation(spaces int) Option {
	return func(o *Options) {
		o.IndentationSpaces = spaces
	}
}

// WithMaxImageWidth caps image width.
func WithMaxImageWidth(width int) Option {
	return func(o *Options) {
		o.MaxImageWidth = width
	}
}

// WithDefaultWidth sets the minimum content width.
func WithDefaultWidth(width int) Option {
	return func(o *Options) {
		o.DefaultWidth = width
	}
}

// WithAltTextOnHover toggles showing image alt text on hover.
func WithAltTextOnHover(show bool) Option {
	return func(o *Options) {
		o.ShowAltTextOnHover = show
	}
}

// WithExplicitURIScheme toggles leaving scheme-less image URIs untouched.
func WithExplicitURIScheme(explicit bool) Option {
	return func(o *Options) {
		o.UseExplicitURIScheme = explicit
	}
}

// WithImplicitURIScheme sets the scheme prepended to scheme-less image URIs.
func WithImplicitURIScheme(scheme string) Option {
	return func(o *Options) {
		o.DefaultImplicitURIScheme = scheme
	}
}

// WithMutable toggles interactive task checkboxes.
func WithMutable(mutable bool) Option {
	return func(o *Options) {
		o.Mutable = mutable
	}
}

// WithAlerts replaces the recognized alerts.
func WithAlerts(alerts AlertBundle) Option {
	return func(o *Options) {
		o.Alerts = alerts
	}
}

// WithSyntaxTheme sets the code highlighting themes.
func WithSyntaxTheme(light, dark string) Option {
	return func(o *Options) {
		o.SyntaxTheme = SyntaxTheme{Light: light, Dark: dark}
	}
}
