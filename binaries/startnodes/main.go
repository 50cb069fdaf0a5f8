package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	exiterrors "github.com/netlab/startnodes/common/errors"
	"github.com/netlab/startnodes/common/log/hooks"
	"github.com/netlab/startnodes/launcher/client/cli"
)

// Starts the nodes of a project one by one, pacing each compute host by its
// CPU load:
//	startnodes version parameter-file project-id [sel-item ...]
// Global flags (see "-h" for all options):
//	--config [preset name, JSON file or JSON text]
//	--heavy_types [comma separated node types with a long settle delay]
//	--dry_run, --stats
//	--log_level [<error|warn|info|debug> level and above should be logged]
// Interrupt (SIGINT/SIGTERM) stops before the next start; nodes already
// started keep running.

func main() {
	hooks.AddContextHookFromEnv(log.StandardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGINT, unix.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("Received %s, aborting", sig)
		cancel()
	}()

	err := cli.NewCLIClient(ctx, os.Stdout).Exec()
	if err == nil {
		return
	}

	code := exiterrors.ExitCode(exiterrors.GenericFailureExitCode)
	if e, ok := err.(*exiterrors.ExitCodeError); ok {
		code = e.GetExitCode()
	}
	if code == exiterrors.InterruptedExitCode {
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintln(os.Stderr, err)
	cancel()
	os.Exit(int(code))
}
