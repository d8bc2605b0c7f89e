package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/gridhost/widget-dashboard/internal/model"
)

const notesStorageKey = "content"

// Notes is a scratchpad persisted through widget storage. All instances
// of the widget share one note, since storage is namespaced per widget id.
func Notes() model.WidgetDefinition {
	return model.WidgetDefinition{
		Component: model.ComponentFunc(renderNotes),
		Manifest: model.WidgetManifest{
			ID:          "notes",
			Name:        "Notes",
			Description: "Persistent scratchpad",
			Version:     "1.0.0",
			Category:    "productivity",
			Tags:        []string{"text", "storage"},
			Permissions: &model.WidgetPermissions{
				Storage: model.PermissionFull,
			},
			DefaultConfig: map[string]any{
				"placeholder": "Write something...",
			},
		},
	}
}

func renderNotes(scope *model.WidgetScope) fyne.CanvasObject {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder(scope.ConfigString("placeholder", ""))
	entry.Wrapping = fyne.TextWrapWord

	var saved string
	if scope.Storage.Get(notesStorageKey, &saved) {
		entry.SetText(saved)
	}
	entry.OnChanged = func(text string) {
		// Persistence failures are invisible here; storage degrades to
		// memory on its own
		_ = scope.Storage.Set(notesStorageKey, text, 0)
	}

	return entry
}
