package widgets

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// Clock shows the current time and keeps itself fresh with a ticker. The
// ticker is registered as a scope cleanup, so tearing the instance down
// stops it.
func Clock() model.WidgetDefinition {
	return model.WidgetDefinition{
		Component: model.ComponentFunc(renderClock),
		Manifest: model.WidgetManifest{
			ID:          "clock",
			Name:        "Clock",
			Description: "Current time, updated every second",
			Version:     "1.0.0",
			Category:    "general",
			Tags:        []string{"time"},
			DefaultConfig: map[string]any{
				"format": "15:04:05",
			},
		},
	}
}

func renderClock(scope *model.WidgetScope) fyne.CanvasObject {
	format := scope.ConfigString("format", "15:04:05")

	label := widget.NewLabel(time.Now().Format(format))
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Monospace: true}

	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case now := <-ticker.C:
				fyne.Do(func() {
					label.SetText(now.Format(format))
				})
			case <-done:
				return
			}
		}
	}()
	scope.RegisterCleanup(func() {
		ticker.Stop()
		close(done)
	})

	return label
}
