// Package console runs the interactive numbered menu on a line-oriented terminal.
package console

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/jeanpaul/studentdb/internal/commands"
	"github.com/jeanpaul/studentdb/internal/tui"
)

const menuTitle = "Student Database Management System"

// Console dispatches menu choices to registered commands until one asks to exit.
type Console struct {
	reg  *commands.Registry
	env  *commands.Env
	exit commands.Command
}

// New builds a console. exitKey names the command run when input ends or the
// context is cancelled, so the final state is saved either way.
func New(reg *commands.Registry, env *commands.Env, exitKey string) (*Console, error) {
	exit, ok := reg.Get(exitKey)
	if !ok {
		return nil, errors.Errorf("exit command %q not registered", exitKey)
	}
	return &Console{reg: reg, env: env, exit: exit}, nil
}

// Run loops until the exit command succeeds. Errors from individual commands are
// reported and the loop continues; only a failure of the final save is returned.
func (c *Console) Run(ctx context.Context) error {
	for {
		fmt.Fprint(c.env.Out, tui.RenderMenu(menuTitle, c.reg.Menu()))
		choice, err := c.env.In.Ask(ctx, "Enter your choice: ")
		if err != nil {
			return c.shutdown(err)
		}

		cmd, ok := c.reg.Get(choice)
		if !ok {
			fmt.Fprintln(c.env.Out, tui.WarningStyle.Render("Invalid choice! Try again."))
			continue
		}

		err = cmd.Execute(ctx, c.env)
		switch {
		case err == nil:
		case errors.Is(err, commands.ErrExitRequested):
			return nil
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return c.shutdown(err)
		default:
			c.env.Log.Warn().Err(err).Str("command", cmd.Title()).Msg("command failed")
			fmt.Fprintln(c.env.Out, tui.ErrorStyle.Render("Error: "+err.Error()))
		}
	}
}

// shutdown runs the exit command after input ended or the context was cancelled.
func (c *Console) shutdown(cause error) error {
	fmt.Fprintln(c.env.Out)
	c.env.Log.Debug().Err(cause).Msg("input closed, exiting")
	// the caller's context may already be done; the save must still happen
	err := c.exit.Execute(context.Background(), c.env)
	if err == nil || errors.Is(err, commands.ErrExitRequested) {
		return nil
	}
	return err
}
