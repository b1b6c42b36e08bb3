// Package config holds the read-only UI configuration values embedkit
// components are constructed with.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrandonKowalski/embedkit/pkg/embedkit/constants"
	"github.com/BurntSushi/toml"
	"github.com/veandco/go-sdl2/sdl"
)

// WizardUI configures the look and timing of a wizard flow.
type WizardUI struct {
	Catalog                string        // Scene catalog the wizard pages are instantiated from
	BackgroundColor        sdl.Color     // Wizard and page background
	TitleColor             sdl.Color     // Page heading text
	MessageColor           sdl.Color     // Page message text
	TitleLineSpacing       float64       // Heading line height multiple
	MessageLineSpacing     float64       // Message line height multiple
	NextButtonTitleColor   sdl.Color     // Next page button title
	PageTransitionDuration time.Duration // Animated paging duration
	NextButtonFadeDuration time.Duration // Next button fade on the last page
}

// Default returns the fallback wizard configuration.
func Default() WizardUI {
	return WizardUI{
		Catalog:                "Wizard",
		BackgroundColor:        HexToColor(0xF4F4F4),
		TitleColor:             HexToColor(0x323A44),
		MessageColor:           HexToColor(0x808080),
		TitleLineSpacing:       1.1,
		MessageLineSpacing:     1.1,
		NextButtonTitleColor:   HexToColor(0x808080),
		PageTransitionDuration: constants.DefaultPageTransitionDuration,
		NextButtonFadeDuration: constants.NextButtonFadeDuration,
	}
}

// HexToColor converts 0xRRGGBB into an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA", with or without the '#'.
func ParseHexColor(s string) (sdl.Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return sdl.Color{}, fmt.Errorf("config: invalid color %q", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return sdl.Color{}, fmt.Errorf("config: invalid color %q: %w", s, err)
	}
	if len(raw) == 6 {
		return HexToColor(uint32(v)), nil
	}
	return sdl.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

type hexColor struct {
	sdl.Color
}

func (c *hexColor) UnmarshalText(text []byte) error {
	parsed, err := ParseHexColor(string(text))
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

type wizardFile struct {
	Catalog                string        `toml:"catalog"`
	BackgroundColor        hexColor      `toml:"background_color"`
	TitleColor             hexColor      `toml:"title_color"`
	MessageColor           hexColor      `toml:"message_color"`
	TitleLineSpacing       float64       `toml:"title_line_spacing"`
	MessageLineSpacing     float64       `toml:"message_line_spacing"`
	NextButtonTitleColor   hexColor      `toml:"next_button_title_color"`
	PageTransitionDuration time.Duration `toml:"page_transition_duration"`
	NextButtonFadeDuration time.Duration `toml:"next_button_fade_duration"`
}

// Decode parses a TOML wizard configuration. Keys that are absent keep
// their Default values.
func Decode(data string) (WizardUI, error) {
	d := Default()
	f := wizardFile{
		Catalog:                d.Catalog,
		BackgroundColor:        hexColor{d.BackgroundColor},
		TitleColor:             hexColor{d.TitleColor},
		MessageColor:           hexColor{d.MessageColor},
		TitleLineSpacing:       d.TitleLineSpacing,
		MessageLineSpacing:     d.MessageLineSpacing,
		NextButtonTitleColor:   hexColor{d.NextButtonTitleColor},
		PageTransitionDuration: d.PageTransitionDuration,
		NextButtonFadeDuration: d.NextButtonFadeDuration,
	}

	md, err := toml.Decode(data, &f)
	if err != nil {
		return WizardUI{}, fmt.Errorf("config: decode wizard: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return WizardUI{}, fmt.Errorf("config: decode wizard: unknown key %q", undecoded[0].String())
	}

	return WizardUI{
		Catalog:                f.Catalog,
		BackgroundColor:        f.BackgroundColor.Color,
		TitleColor:             f.TitleColor.Color,
		MessageColor:           f.MessageColor.Color,
		TitleLineSpacing:       f.TitleLineSpacing,
		MessageLineSpacing:     f.MessageLineSpacing,
		NextButtonTitleColor:   f.NextButtonTitleColor.Color,
		PageTransitionDuration: f.PageTransitionDuration,
		NextButtonFadeDuration: f.NextButtonFadeDuration,
	}, nil
}

// Load reads a TOML wizard configuration file.
func Load(path string) (WizardUI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WizardUI{}, fmt.Errorf("config: load wizard: %w", err)
	}
	return Decode(string(data))
}
