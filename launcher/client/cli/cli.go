package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/netlab/startnodes/common"
	commoncli "github.com/netlab/startnodes/common/client"
	"github.com/netlab/startnodes/common/endpoints"
	exiterrors "github.com/netlab/startnodes/common/errors"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/controller"
	"github.com/netlab/startnodes/launcher/config"
	"github.com/netlab/startnodes/launcher/domain"
	"github.com/netlab/startnodes/launcher/scheduler"
)

// StartNodesCLI includes fields required for CLI client handling
type StartNodesCLI struct {
	commoncli.SimpleClient

	ctx    context.Context
	stdout io.Writer

	configSelector string
	heavyTypes     string
	httpAddr       string
	printStats     bool
	dryRun         bool
}

// NewCLIClient makes the startnodes command. ctx is cancelled to abort a run;
// progress, plans and stats are printed to stdout.
func NewCLIClient(ctx context.Context, stdout io.Writer) *StartNodesCLI {
	if stdout == nil {
		stdout = os.Stdout
	}
	c := &StartNodesCLI{ctx: ctx, stdout: stdout}

	c.RootCmd = &cobra.Command{
		Use:               "startnodes version parameter-file project-id [sel-item ...]",
		Short:             "startnodes starts the nodes of a project one by one, pacing each compute host by its CPU load",
		Args:              cobra.MinimumNArgs(3),
		PersistentPreRunE: c.Init,
		RunE:              c.run,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	flags := c.RootCmd.PersistentFlags()
	flags.StringVar(&c.LogLevel, "log_level", "warn", "Log everything at this level and above (error|warn|info|debug)")
	flags.StringVar(&c.configSelector, "config", "default", "Tuning preset name, JSON config file, or JSON text")
	flags.StringVar(&c.heavyTypes, "heavy_types", "", "Comma separated node types settled as heavy, overriding the config")
	flags.StringVar(&c.httpAddr, "http_addr", "", "Serve /health and /admin/metrics.json on this address during the run")
	flags.BoolVar(&c.printStats, "stats", false, "Print run stats as JSON when done")
	flags.BoolVar(&c.dryRun, "dry_run", false, "Print the per-host start queues without starting anything")
	return c
}

// Exec runs the command. Any error is an *ExitCodeError.
func (c *StartNodesCLI) Exec() error {
	err := c.RootCmd.Execute()
	if err == nil {
		return nil
	}
	if _, ok := err.(*exiterrors.ExitCodeError); ok {
		return err
	}
	// cobra rejected the arguments or flags
	return exiterrors.NewError(fmt.Errorf("%v\nusage:\n%s", err, c.RootCmd.UseLine()), exiterrors.UsageExitCode)
}

func (c *StartNodesCLI) schedulerConfig() (*config.JSONConfig, scheduler.Config, error) {
	jsonConfig, err := config.GetConfig(c.configSelector)
	if err != nil {
		return nil, scheduler.Config{}, err
	}
	cfg, err := jsonConfig.Create()
	if err != nil {
		return nil, scheduler.Config{}, err
	}
	if c.heavyTypes != "" {
		var types []domain.NodeType
		for _, t := range common.SplitCommaSep(c.heavyTypes) {
			types = append(types, domain.NodeType(t))
		}
		cfg.HeavyTypes = domain.NewTypeSet(types...)
	}
	return jsonConfig, cfg, nil
}

func (c *StartNodesCLI) run(cmd *cobra.Command, args []string) error {
	version, paramFile, projectId, selection := args[0], args[1], args[2], args[3:]
	log.Infof("Invoked by version %s for project %s", version, projectId)

	jsonConfig, cfg, err := c.schedulerConfig()
	if err != nil {
		return exiterrors.NewError(err, exiterrors.UsageExitCode)
	}
	opts, err := jsonConfig.ControllerOptions()
	if err != nil {
		return exiterrors.NewError(err, exiterrors.UsageExitCode)
	}
	log.Infof("Using %s", cfg)

	params, err := controller.LoadParams(paramFile)
	if err != nil {
		return exiterrors.NewError(err, exiterrors.ParamsFailureExitCode)
	}

	stat, cancel := stats.NewCustomStatsReceiver(stats.NewFinagleStatsRegistry, 0)
	defer cancel()
	if c.httpAddr != "" {
		serveCtx, stopServing := context.WithCancel(c.ctx)
		defer stopServing()
		go func() {
			if err := endpoints.NewTwitterServer(c.httpAddr, stat).Serve(serveCtx); err != nil {
				log.WithError(err).Warn("Can't serve stats")
			}
		}()
	}

	client := controller.NewClient(params, opts, stat)
	if _, err := client.Connect(c.ctx); err != nil {
		return exitError(err)
	}
	launcher := scheduler.NewLauncher(client, cfg, nil, stat, c.stdout)

	if c.dryRun {
		queues, skipped, err := launcher.Plan(c.ctx, projectId, selection)
		if err != nil {
			return exitError(err)
		}
		for _, q := range queues {
			fmt.Fprintln(c.stdout, q)
		}
		fmt.Fprintf(c.stdout, "%d already started\n", skipped)
		return nil
	}

	_, err = launcher.StartNodes(c.ctx, projectId, selection)
	if c.printStats {
		fmt.Fprintf(c.stdout, "%s\n", stat.Render(true))
	}
	return exitError(err)
}

// exitError maps launcher failures to their exit codes.
func exitError(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsInterruptedError(err):
		return exiterrors.NewError(err, exiterrors.InterruptedExitCode)
	case domain.IsEmptySelectionError(err):
		return exiterrors.NewError(err, exiterrors.EmptySelectionExitCode)
	case domain.IsStartCommandError(err):
		return exiterrors.NewError(err, exiterrors.StartCommandFailureExitCode)
	case domain.IsConnectivityError(err):
		return exiterrors.NewError(err, exiterrors.ConnectivityFailureExitCode)
	case controller.IsParamsError(err):
		return exiterrors.NewError(err, exiterrors.ParamsFailureExitCode)
	}
	return exiterrors.NewError(err, exiterrors.GenericFailureExitCode)
}
