// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for playlist generation:
//  1. [GeneratingView] : Watch seed resolution and mood filtering progress
//  2. [TrackListView] : Review the working playlist, pruning tracks before publishing
//  3. [ConfirmView] : Confirm the publish operation
//  4. [PublishView] : Monitor playlist creation and batched track additions
//  5. [ResultView] : Display the published playlist or partial failures
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the MixEngine, providing non-blocking status reporting during operations.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, d, y/n, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
