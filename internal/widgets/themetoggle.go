package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/platform"
)

// ThemeToggle is a button that asks the platform provider to flip between
// light and dark. The widget never touches the provider directly; it
// publishes a request on the shared event feed and lets the provider
// decide.
func ThemeToggle(requests *event.Feed[platform.ThemeChangeRequest]) model.WidgetDefinition {
	return model.WidgetDefinition{
		Component: model.ComponentFunc(func(scope *model.WidgetScope) fyne.CanvasObject {
			return renderThemeToggle(scope, requests)
		}),
		Manifest: model.WidgetManifest{
			ID:          "theme-toggle",
			Name:        "Theme Toggle",
			Description: "Switch between light and dark mode",
			Version:     "1.0.0",
			Category:    "appearance",
			Tags:        []string{"theme"},
		},
	}
}

func renderThemeToggle(scope *model.WidgetScope, requests *event.Feed[platform.ThemeChangeRequest]) fyne.CanvasObject {
	label := "Switch to dark"
	target := model.ThemeModeDark
	if scope.Theme.Resolved == model.ThemeDark {
		label = "Switch to light"
		target = model.ThemeModeLight
	}

	button := widget.NewButton(label, func() {
		requests.Publish(platform.ThemeChangeRequest{Mode: target})
	})
	return button
}
