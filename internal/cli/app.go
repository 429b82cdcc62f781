// Package cli is the interactive famlist client: onboarding (create or
// join a family) and a small REPL over the shared list.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"famlist/internal/common"
	"famlist/internal/enroll"
	"famlist/internal/identity"
	"famlist/internal/logging"
	"famlist/internal/models"
	"famlist/internal/sync"
)

type App struct {
	flow    *enroll.Flow
	syncer  *sync.Syncer
	configs *identity.Store
	log     logging.Logger

	cfg *models.GroupConfig
	// scanner is the single line source for onboarding and the REPL, so
	// neither can buffer ahead of the other.
	scanner *bufio.Scanner
	out     io.Writer
}

// newApp wires an App reading from in and writing to out. NewApp binds it
// to the process stdio.
func newApp(flow *enroll.Flow, syncer *sync.Syncer, configs *identity.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		flow:    flow,
		syncer:  syncer,
		configs: configs,
		log:     log,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func NewApp(flow *enroll.Flow, syncer *sync.Syncer, configs *identity.Store, log logging.Logger) *App {
	return newApp(flow, syncer, configs, log, os.Stdin, os.Stdout)
}

// Run loads the persisted membership (or walks the user through onboarding),
// attaches the synchronizer and hands control to the REPL. Leaving a family
// loops back to onboarding.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.configs.Load()
	if err != nil {
		return fmt.Errorf("loading membership: %w", err)
	}
	a.cfg = cfg

	for {
		if a.cfg == nil {
			done, err := a.onboard(ctx)
			if err != nil {
				return err
			}
			if !done {
				return nil
			}
		}

		a.syncer.Attach(ctx, a.cfg.GroupID)
		a.log.Debug(ctx, "attached", "group", a.cfg.GroupID, "member", a.cfg.MemberName)
		left := runREPL(ctx, a, a.scanner, a.out)
		a.syncer.Detach()
		if !left {
			return nil
		}
		a.cfg = nil
	}
}

// onboard prompts until the user has created or joined a family. It returns
// false when the user chose to quit instead.
func (a *App) onboard(ctx context.Context) (bool, error) {
	for {
		choice, err := GetSimpleText(a.scanner, "Start a new family list or join one? (create/join/exit)", a.out)
		if err != nil {
			return false, readErr(err)
		}

		switch choice {
		case "create":
			name, err := GetSimpleText(a.scanner, "Your name", a.out)
			if err != nil {
				return false, readErr(err)
			}
			cfg, err := a.flow.Create(ctx, name)
			if err != nil {
				a.reportEnrollError(err)
				continue
			}
			a.cfg = &cfg
			fmt.Fprintf(a.out, "Family created! Share this code: %s\n", cfg.GroupID)
			return true, nil

		case "join":
			code, err := GetSimpleText(a.scanner, "Family code", a.out)
			if err != nil {
				return false, readErr(err)
			}
			name, err := GetSimpleText(a.scanner, "Your name", a.out)
			if err != nil {
				return false, readErr(err)
			}
			cfg, err := a.flow.Join(ctx, code, name)
			if err != nil {
				a.reportEnrollError(err)
				continue
			}
			a.cfg = &cfg
			fmt.Fprintf(a.out, "Joined family %s. Welcome, %s!\n", cfg.GroupID, cfg.MemberName)
			return true, nil

		case "exit", "quit":
			return false, nil

		default:
			fmt.Fprintln(a.out, "Please answer create, join or exit.")
		}
	}
}

func (a *App) reportEnrollError(err error) {
	switch {
	case errors.Is(err, common.ErrorNoSuchGroup):
		fmt.Fprintln(a.out, "No family found with that code.")
	case errors.Is(err, common.ErrorValidation):
		fmt.Fprintf(a.out, "Invalid input: %v\n", err)
	default:
		fmt.Fprintf(a.out, "Something went wrong: %v\n", err)
	}
}

// List prints the current in-memory view.
func (a *App) List(ctx context.Context) {
	items := a.syncer.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "The list is empty.")
		return
	}
	for i, it := range items {
		mark := " "
		if it.Done {
			mark = "x"
		}
		fmt.Fprintf(a.out, "%3d. [%s] %s  (%s)\n", i+1, mark, it.Title, it.AddedBy)
	}
}

// Add appends a new item under the member's name.
func (a *App) Add(ctx context.Context, title string) {
	if title == "" {
		fmt.Fprintln(a.out, "Usage: add <title>")
		return
	}
	a.syncer.AddItem(ctx, title, a.cfg.MemberName)
}

// Done toggles the n-th item as printed by List.
func (a *App) Done(ctx context.Context, arg string) {
	id, ok := a.resolveIndex(arg)
	if !ok {
		return
	}
	a.syncer.ToggleItem(ctx, id)
}

// Remove deletes the n-th item as printed by List.
func (a *App) Remove(ctx context.Context, arg string) {
	id, ok := a.resolveIndex(arg)
	if !ok {
		return
	}
	a.syncer.RemoveItem(ctx, id)
}

// Code shows the family code so it can be shared with new members.
func (a *App) Code(ctx context.Context) {
	fmt.Fprintf(a.out, "Family code: %s\n", a.cfg.GroupID)
}

// Leave signs the device out: the membership file is removed and the
// synchronizer detached by the caller.
func (a *App) Leave(ctx context.Context) error {
	if err := a.configs.Clear(); err != nil {
		fmt.Fprintf(a.out, "Could not sign out: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) resolveIndex(arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Expected an item number, e.g.: done 2")
		return "", false
	}
	items := a.syncer.Items()
	if n < 1 || n > len(items) {
		fmt.Fprintf(a.out, "No item %d; the list has %d item(s).\n", n, len(items))
		return "", false
	}
	return items[n-1].ID, true
}

// readErr maps EOF on stdin to a clean shutdown.
func readErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
