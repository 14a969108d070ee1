package media

import (
	"errors"
	"log"

	"github.com/ncruces/zenity"
)

var ErrNoTrack = errors.New("media: no track selected")

const dialogTitle = "Petal Overlay"

// PickTrack asks the user for an audio file.
func PickTrack() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", ErrNoTrack
		}
		return "", err
	}
	return filename, nil
}

// Alert shows msg in an error dialog. It returns at once so the game loop
// keeps running while the dialog is open.
func Alert(msg string) {
	go func() {
		err := zenity.Error(msg, zenity.Title(dialogTitle), zenity.ErrorIcon)
		if err != nil && !errors.Is(err, zenity.ErrCanceled) {
			log.Printf("[Audio] notice dialog: %v", err)
		}
	}()
}
