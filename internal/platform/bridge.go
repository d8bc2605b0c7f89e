package platform

import (
	"github.com/gridhost/widget-dashboard/internal/model"
)

// FileFilter restricts dialog selection to named extension groups
type FileFilter struct {
	Name       string
	Extensions []string
}

// DialogOptions configures open/save dialogs
type DialogOptions struct {
	Title       string
	DefaultPath string
	ButtonLabel string
	Filters     []FileFilter
	Directories bool
	Multi       bool
}

// FileEntry describes one directory listing result
type FileEntry struct {
	Name        string
	Path        string
	Size        int64
	IsDirectory bool
	ModifiedAt  int64
	CreatedAt   int64
}

// FileChange is delivered to file watch callbacks
type FileChange struct {
	Type string // "change" or "rename"
	Path string
}

// WindowBridge exposes host window controls
type WindowBridge interface {
	Minimize() error
	Maximize() error
	Close() error
	IsMaximized() (bool, error)
}

// ThemeBridge exposes the host's native theme subsystem
type ThemeBridge interface {
	Get() (model.ThemeValue, error)
	Set(mode model.ThemeMode) error
	OnChanged(callback func(model.ThemeValue)) (unsubscribe func())
}

// FileBridge exposes host file operations
type FileBridge interface {
	ShowOpenDialog(opts DialogOptions) (paths []string, canceled bool, err error)
	ShowSaveDialog(opts DialogOptions) (path string, canceled bool, err error)
	ReadFile(path string) (string, error)
	ReadBinary(path string) ([]byte, error)
	WriteFile(path, data string) error
	ListDirectory(path string) ([]FileEntry, error)
	Exists(path string) (bool, error)
	Watch(path string, callback func(FileChange)) (watchID string, err error)
	Unwatch(watchID string) error
}

// NotificationBridge shows host notifications
type NotificationBridge interface {
	Show(title, body string) (bool, error)
}

// AppBridge exposes host application metadata
type AppBridge interface {
	Version() string
	Name() string
}

// HostShell is the optional native embedding layer. Every accessor may
// return nil; absence of the bridge or any of its parts is the normal web
// case, never an error.
type HostShell interface {
	Window() WindowBridge
	Theme() ThemeBridge
	Files() FileBridge
	Notifications() NotificationBridge
	App() AppBridge
}
