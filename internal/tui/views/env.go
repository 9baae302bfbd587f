package views

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/f3rmion/gallifreyan/internal/alphabet"
	"github.com/f3rmion/gallifreyan/internal/config"
	"github.com/f3rmion/gallifreyan/internal/render"
	"github.com/f3rmion/gallifreyan/internal/store"
)

// Env is the state the views share. Views hold a pointer to one Env, so a
// change made by one view is seen by the others.
type Env struct {
	Config   config.Config
	Alphabet *alphabet.Alphabet
	Scheme   render.Scheme
	// Store is the composition library; nil disables saving and the
	// library view.
	Store  *store.Store
	Logger *log.Logger
	// ExportDir receives exported images.
	ExportDir string
	// Mono draws the preview with plain block characters.
	Mono bool
}

func (e *Env) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.New(io.Discard)
}

// SchemeChangedMsg is sent after the colour scheme was edited.
type SchemeChangedMsg struct{}

// AnimationChangedMsg is sent after the animation settings were edited.
type AnimationChangedMsg struct{}

// OpenCompositionMsg asks the editor to load a stored composition.
type OpenCompositionMsg struct {
	Composition store.Composition
}

// SavedMsg reports that the editor stored a composition.
type SavedMsg struct {
	Name string
	Err  error
}
