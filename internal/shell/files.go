package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"

	"github.com/gridhost/widget-dashboard/internal/data"
	"github.com/gridhost/widget-dashboard/internal/platform"
)

// fileBridge backs file operations with the OS and the shared watcher.
// Dialog calls block until the user answers and must not be made from the
// Fyne render goroutine.
type fileBridge struct {
	shell *DesktopShell
}

// extensionFilter converts bridge filters to a Fyne storage filter
func extensionFilter(filters []platform.FileFilter) fynestorage.FileFilter {
	var extensions []string
	for _, filter := range filters {
		for _, ext := range filter.Extensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions = append(extensions, ext)
		}
	}
	if len(extensions) == 0 {
		return nil
	}
	return fynestorage.NewExtensionFileFilter(extensions)
}

type openResult struct {
	paths    []string
	canceled bool
	err      error
}

func (f *fileBridge) ShowOpenDialog(opts platform.DialogOptions) ([]string, bool, error) {
	done := make(chan openResult, 1)

	fyne.Do(func() {
		if opts.Directories {
			picker := dialog.NewFolderOpen(func(list fyne.ListableURI, err error) {
				if err != nil {
					done <- openResult{err: err}
					return
				}
				if list == nil {
					done <- openResult{canceled: true}
					return
				}
				done <- openResult{paths: []string{list.Path()}}
			}, f.shell.window)
			if opts.Title != "" {
				picker.SetTitleText(opts.Title)
			}
			picker.Show()
			return
		}

		picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				done <- openResult{err: err}
				return
			}
			if reader == nil {
				done <- openResult{canceled: true}
				return
			}
			path := reader.URI().Path()
			reader.Close()
			done <- openResult{paths: []string{path}}
		}, f.shell.window)
		if filter := extensionFilter(opts.Filters); filter != nil {
			picker.SetFilter(filter)
		}
		if opts.Title != "" {
			picker.SetTitleText(opts.Title)
		}
		picker.Show()
	})

	result := <-done
	return result.paths, result.canceled, result.err
}

func (f *fileBridge) ShowSaveDialog(opts platform.DialogOptions) (string, bool, error) {
	type saveResult struct {
		path     string
		canceled bool
		err      error
	}
	done := make(chan saveResult, 1)

	fyne.Do(func() {
		picker := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				done <- saveResult{err: err}
				return
			}
			if writer == nil {
				done <- saveResult{canceled: true}
				return
			}
			path := writer.URI().Path()
			writer.Close()
			done <- saveResult{path: path}
		}, f.shell.window)
		if filter := extensionFilter(opts.Filters); filter != nil {
			picker.SetFilter(filter)
		}
		if opts.Title != "" {
			picker.SetTitleText(opts.Title)
		}
		if opts.DefaultPath != "" {
			picker.SetFileName(filepath.Base(opts.DefaultPath))
		}
		picker.Show()
	})

	result := <-done
	return result.path, result.canceled, result.err
}

func (f *fileBridge) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return string(data), nil
}

func (f *fileBridge) ReadBinary(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

func (f *fileBridge) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func (f *fileBridge) ListDirectory(path string) ([]platform.FileEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", path, err)
	}

	listing := make([]platform.FileEntry, 0, len(entries))
	for _, entry := range entries {
		item := platform.FileEntry{
			Name:        entry.Name(),
			Path:        filepath.Join(path, entry.Name()),
			IsDirectory: entry.IsDir(),
		}
		if info, err := entry.Info(); err == nil {
			item.Size = info.Size()
			item.ModifiedAt = info.ModTime().UnixMilli()
		}
		listing = append(listing, item)
	}
	return listing, nil
}

func (f *fileBridge) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (f *fileBridge) Watch(path string, callback func(platform.FileChange)) (string, error) {
	return f.shell.watcher.Watch(path, func(change data.FileChange) {
		callback(platform.FileChange{Type: change.Type, Path: change.Path})
	})
}

func (f *fileBridge) Unwatch(watchID string) error {
	return f.shell.watcher.Unwatch(watchID)
}
