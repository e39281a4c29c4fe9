package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/actionmenu/internal/codeaction"
)

// WatchCmd prints the menu whenever the action file or a keybinding file
// changes. Stops on SIGINT or SIGTERM.
type WatchCmd struct {
	KeybindingFlags `embed:""`

	Actions         string `help:"Code action JSON file" short:"a" required:"" type:"existingfile"`
	IncludeDisabled bool   `help:"List disabled actions too"`
}

// Run executes the watch command.
func (wc *WatchCmd) Run(cli *CLI) error {
	a, err := cli.application(wc.KeybindingFlags, wc.IncludeDisabled)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Watch(ctx, wc.Actions, func(menu codeaction.Menu) {
		fmt.Fprintf(cli.out, "# %s, %d entries\n", time.Now().Format("15:04:05"), len(menu.ActionItems()))
		if err := printMenuTable(cli.out, menu); err != nil {
			cli.logger.Error("printing menu: %v", err)
		}
		fmt.Fprintln(cli.out)
	})
}
