package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return i.track.Name }
func (i trackItem) Description() string {
	artists := strings.Join(i.track.Artists, ", ")
	if artists == "" {
		artists = "Unknown artist"
	}
	return fmt.Sprintf("%s • %s", artists, shared.FormatDuration(i.track.DurationMS))
}
