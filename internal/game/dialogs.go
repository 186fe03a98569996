package game

import (
	"errors"
	"path/filepath"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-backdrop/internal/audio"
)

// Dialogs asks the user for file paths. An empty path with a nil error means
// the user cancelled.
type Dialogs interface {
	OpenTrack() (string, error)
	SaveSnapshot() (string, error)
}

// ZenityDialogs shows native file dialogs.
type ZenityDialogs struct{}

func (ZenityDialogs) OpenTrack() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Ambient Track"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Extensions(),
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return filename, err
}

func (ZenityDialogs) SaveSnapshot() (string, error) {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("backdrop.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	return filename, nil
}
