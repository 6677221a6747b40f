package lantern

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/lantern/geom"
)

// DefaultCharacters is the character set the examples put in the glyph
// cache.
const DefaultCharacters = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789:-+,.!°ěäЗдравстуймиΓειασουκόμ "

// WindowConfig configures the example window.
type WindowConfig struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Debug   bool   `toml:"debug"`
	ShowFPS bool   `toml:"show_fps"`
}

// FontConfig selects the font plugin and file.
type FontConfig struct {
	Plugin string `toml:"plugin"`
	// Path is a TTF/OTF file. Empty uses the bundled Go Regular font.
	Path string  `toml:"path"`
	Size float32 `toml:"size"`
}

// GlyphCacheConfig sizes the distance-field glyph cache.
type GlyphCacheConfig struct {
	OriginalSize int    `toml:"original_size"`
	Size         int    `toml:"size"`
	Radius       int    `toml:"radius"`
	Characters   string `toml:"characters"`
}

// TextConfig holds text sizes in projection units.
type TextConfig struct {
	Size    float32 `toml:"size"`
	HUDSize float32 `toml:"hud_size"`
}

// ColorConfig holds the text colors and distance-field parameters.
type ColorConfig struct {
	Hue          float32 `toml:"hue"`
	Saturation   float64 `toml:"saturation"`
	Value        float64 `toml:"value"`
	Outline      float64 `toml:"outline"`
	OutlineStart float32 `toml:"outline_start"`
	OutlineEnd   float32 `toml:"outline_end"`
	Smoothness   float32 `toml:"smoothness"`
}

// ExampleConfig is the TOML configuration shared by the example programs.
type ExampleConfig struct {
	Window     WindowConfig     `toml:"window"`
	Font       FontConfig       `toml:"font"`
	GlyphCache GlyphCacheConfig `toml:"glyph_cache"`
	Text       TextConfig       `toml:"text"`
	Color      ColorConfig      `toml:"color"`
}

// DefaultExampleConfig returns the built-in example configuration.
func DefaultExampleConfig() ExampleConfig {
	return ExampleConfig{
		Window: WindowConfig{
			Title:  "Lantern Text Example",
			Width:  800,
			Height: 600,
		},
		Font: FontConfig{
			Plugin: "TrueTypeFont",
			Size:   110,
		},
		GlyphCache: GlyphCacheConfig{
			OriginalSize: 2048,
			Size:         512,
			Radius:       22,
			Characters:   DefaultCharacters,
		},
		Text: TextConfig{
			Size:    0.1295,
			HUDSize: 0.035,
		},
		Color: ColorConfig{
			Hue:          216,
			Saturation:   0.85,
			Value:        1,
			Outline:      0.95,
			OutlineStart: 0.45,
			OutlineEnd:   0.35,
			Smoothness:   0.025,
		},
	}
}

// LoadExampleConfig reads a TOML file over the defaults. An empty path
// returns the defaults.
func LoadExampleConfig(path string) (ExampleConfig, error) {
	if path == "" {
		return DefaultExampleConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ExampleConfig{}, fmt.Errorf("lantern: read config: %w", err)
	}
	return ParseExampleConfig(bytes.NewReader(data))
}

// ParseExampleConfig decodes TOML over the defaults. Unknown keys are
// rejected.
func ParseExampleConfig(r io.Reader) (ExampleConfig, error) {
	cfg := DefaultExampleConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return ExampleConfig{}, fmt.Errorf("lantern: parse config: %s", strict.String())
		}
		return ExampleConfig{}, fmt.Errorf("lantern: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return ExampleConfig{}, err
	}
	return cfg, nil
}

func (c ExampleConfig) validate() error {
	switch {
	case c.Font.Size <= 0:
		return fmt.Errorf("lantern: config: font size must be positive, got %g", c.Font.Size)
	case c.GlyphCache.Size <= 0 || c.GlyphCache.OriginalSize <= 0:
		return fmt.Errorf("lantern: config: glyph cache sizes must be positive")
	case c.GlyphCache.Radius <= 0:
		return fmt.Errorf("lantern: config: glyph cache radius must be positive")
	case c.Text.Size <= 0 || c.Text.HUDSize <= 0:
		return fmt.Errorf("lantern: config: text sizes must be positive")
	}
	return nil
}

// FontData returns the contents of Font.Path, or the bundled Go Regular font
// when no path is set.
func (c ExampleConfig) FontData() ([]byte, error) {
	if c.Font.Path == "" {
		return goregular.TTF, nil
	}
	data, err := os.ReadFile(c.Font.Path)
	if err != nil {
		return nil, fmt.Errorf("lantern: read font: %w", err)
	}
	return data, nil
}

// Configuration converts the window section to an application Configuration.
func (c ExampleConfig) Configuration() Configuration {
	cfg := DefaultConfiguration()
	cfg.Title = c.Window.Title
	cfg.Width = c.Window.Width
	cfg.Height = c.Window.Height
	cfg.Debug = c.Window.Debug
	cfg.ShowFPS = c.Window.ShowFPS
	return cfg
}

// TextColor returns the fill color described by the HSV settings.
func (c ExampleConfig) TextColor() Color {
	return ColorFromHSV(geom.Deg(c.Color.Hue), c.Color.Saturation, c.Color.Value)
}

// OutlineColor returns the gray outline color.
func (c ExampleConfig) OutlineColor() Color {
	return Gray(c.Color.Outline)
}
