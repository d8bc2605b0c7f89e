package widgets

import (
	"github.com/gridhost/widget-dashboard/internal/event"
	"github.com/gridhost/widget-dashboard/internal/model"
	"github.com/gridhost/widget-dashboard/internal/platform"
)

// BuiltIn returns the full built-in widget set, ready for RegisterAll.
// The theme-change request feed is shared with the platform provider.
func BuiltIn(themeRequests *event.Feed[platform.ThemeChangeRequest]) []model.WidgetDefinition {
	return []model.WidgetDefinition{
		Clock(),
		Notes(),
		ThemeToggle(themeRequests),
		ComingSoon(),
	}
}
