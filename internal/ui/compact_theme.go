package ui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// DashboardTheme is a compact theme locked to one resolved variant. The
// platform provider resolves light or dark and swaps the theme wholesale;
// the OS variant Fyne reports is deliberately ignored so the resolved
// value is the single source of truth.
type DashboardTheme struct {
	variant fyne.ThemeVariant
	primary color.Color
}

// NewDashboardTheme creates a theme for the resolved value. primary is
// the tenant's brand color; nil keeps the default blue.
func NewDashboardTheme(resolved model.ThemeValue, primary color.Color) fyne.Theme {
	variant := theme.VariantLight
	if resolved == model.ThemeDark {
		variant = theme.VariantDark
	}
	if primary == nil {
		primary = color.RGBA{R: 25, G: 118, B: 210, A: 255}
	}
	return &DashboardTheme{variant: variant, primary: primary}
}

// ParseHexColor converts a #rrggbb tenant color to a color.Color.
// Malformed input yields nil, which keeps the default.
func ParseHexColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return nil
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil
	}
	return color.RGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 255,
	}
}

// Color returns theme colors for the locked variant
func (t *DashboardTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255} // Green
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // Red
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255} // Amber
	case theme.ColorNamePrimary:
		return t.primary
	case theme.ColorNameBackground:
		if t.variant == theme.VariantDark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if t.variant == theme.VariantDark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	// Use default colors for everything else, pinned to our variant
	return theme.DefaultTheme().Color(name, t.variant)
}

// Font returns theme fonts
func (t *DashboardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *DashboardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *DashboardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
