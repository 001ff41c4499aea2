package tui

import (
	"github.com/rgehrsitz/ccsgo/internal/scenario"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneTable Scene = iota
	SceneDetail
	SceneChart
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneTable:
		return "Scenarios"
	case SceneDetail:
		return "Detail"
	case SceneChart:
		return "Chart"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// BatchLoadedMsg carries a freshly generated batch
type BatchLoadedMsg struct {
	Batch scenario.Batch
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// StatusMsg shows a transient line in the status bar
type StatusMsg string
