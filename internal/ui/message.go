package ui

import (
	"github.com/desertthunder/tmx/internal/tasks"
)

// generateDoneMsg is delivered when a generation run finishes.
type generateDoneMsg struct {
	result *tasks.GenerateResult
	err    error
}

// progressUpdateMsg carries one engine progress event into the Elm loop.
type progressUpdateMsg tasks.ProgressUpdate

// publishDoneMsg is delivered when a publish run finishes.
type publishDoneMsg struct {
	result *tasks.PublishResult
	err    error
}
