package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// ComingSoon is a placeholder card for features that are not built yet.
// Its title and message come entirely from config, so it doubles as the
// simplest possible example of the default-config merge.
func ComingSoon() model.WidgetDefinition {
	return model.WidgetDefinition{
		Component: model.ComponentFunc(renderComingSoon),
		Manifest: model.WidgetManifest{
			ID:          "coming-soon-card",
			Name:        "Coming Soon",
			Description: "Placeholder card for upcoming features",
			Version:     "1.0.0",
			Category:    "general",
			Tags:        []string{"placeholder"},
			DefaultConfig: map[string]any{
				"title":   "Coming soon",
				"message": "This widget is on its way.",
			},
		},
	}
}

func renderComingSoon(scope *model.WidgetScope) fyne.CanvasObject {
	message := widget.NewLabel(scope.ConfigString("message", ""))
	message.Wrapping = fyne.TextWrapWord
	return widget.NewCard(scope.ConfigString("title", "Coming soon"), "", message)
}
