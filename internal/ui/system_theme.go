package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
)

// FyneSystemTheme adapts Fyne's settings to the platform provider's
// system-theme source, so mode "system" can follow the OS preference.
type FyneSystemTheme struct {
	app  fyne.App
	feed *event.Feed[model.ThemeValue]
	stop chan struct{}
}

// NewFyneSystemTheme starts listening to Fyne settings changes
func NewFyneSystemTheme(app fyne.App) *FyneSystemTheme {
	s := &FyneSystemTheme{
		app:  app,
		feed: event.NewFeed[model.ThemeValue](),
		stop: make(chan struct{}),
	}

	changes := make(chan fyne.Settings, 4)
	app.Settings().AddChangeListener(changes)
	go func() {
		last := s.Current()
		for {
			select {
			case <-changes:
				if current := s.Current(); current != last {
					last = current
					s.feed.Publish(current)
				}
			case <-s.stop:
				return
			}
		}
	}()

	return s
}

// Current implements platform.SystemThemeSource
func (s *FyneSystemTheme) Current() model.ThemeValue {
	if s.app.Settings().ThemeVariant() == theme.VariantDark {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// OnChanged implements platform.SystemThemeSource
func (s *FyneSystemTheme) OnChanged(callback func(model.ThemeValue)) func() {
	return s.feed.Subscribe(callback)
}

// Close stops the settings listener goroutine
func (s *FyneSystemTheme) Close() {
	close(s.stop)
}
