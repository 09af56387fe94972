// Package commands implements the numbered actions of the interactive menu.
package commands

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeanpaul/studentdb/internal/store"
)

// ErrExitRequested is returned by a command that ends the menu loop.
var ErrExitRequested = errors.New("exit requested")

// Command is one entry of the menu.
type Command interface {
	Key() string   // what the user types to select it, e.g. "1"
	Title() string // menu text
	Execute(ctx context.Context, env *Env) error
}

// Env is what a command works with: the records, the user's input and the output.
type Env struct {
	Store store.Repository
	In    *Prompter
	Out   io.Writer
	Log   zerolog.Logger
}
