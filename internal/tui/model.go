package tui

import (
	"github.com/mindvr/reststyle/internal/config"
	"github.com/mindvr/reststyle/internal/log"
)

// PanelState is the fallback share panel.
type PanelState struct {
	Open    bool
	Content string
}

// Model holds state shared by the app and its views.
type Model struct {
	Cfg    *config.Config
	Dir    string
	Logger *log.Logger

	Panel PanelState
	// Notice is a persistent message, such as a Kakao setup hint.
	Notice string
	Err    error

	// Sharing is true while a share chain runs.
	Sharing bool

	ShowHelp bool

	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model with the given configuration.
func NewModel(cfg *config.Config, dir string, logger *log.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Model{
		Cfg:    cfg,
		Dir:    dir,
		Logger: logger,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}
