package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// UnmarshalTOML accepts either a single color or a [light, dark] pair.
func (c *Color) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		c.TerminalColor = lipgloss.Color(v)
		return nil
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("adaptive color needs exactly two values, got %d", len(v))
		}
		light, ok1 := v[0].(string)
		dark, ok2 := v[1].(string)
		if !ok1 || !ok2 {
			return errors.New("adaptive color values must be strings")
		}
		c.TerminalColor = lipgloss.AdaptiveColor{Light: light, Dark: dark}
		return nil
	}
	return fmt.Errorf("unsupported color value %v", data)
}

// themeFile is the layout of a theme TOML file. Missing keys keep their
// default.
type themeFile struct {
	Primary    *Color
	Subtle     *Color
	Success    *Color
	Warning    *Color
	Error      *Color
	Normal     *Color
	Disabled   *Color
	Border     *Color
	ExpiryNear *Color
	ExpiryFar  *Color
}

// LoadTheme reads a theme from r on top of the default theme.
func LoadTheme(r io.Reader) (Theme, error) {
	if r == nil {
		return Theme{}, errors.New("no theme to load")
	}

	var tf themeFile
	if _, err := toml.NewDecoder(r).Decode(&tf); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}

	theme := NewDefaultTheme()
	for _, o := range []struct {
		src *Color
		dst *Color
	}{
		{tf.Primary, &theme.Primary},
		{tf.Subtle, &theme.Subtle},
		{tf.Success, &theme.Success},
		{tf.Warning, &theme.Warning},
		{tf.Error, &theme.Error},
		{tf.Normal, &theme.Normal},
		{tf.Disabled, &theme.Disabled},
		{tf.Border, &theme.Border},
		{tf.ExpiryNear, &theme.ExpiryNear},
		{tf.ExpiryFar, &theme.ExpiryFar},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	return theme, nil
}
