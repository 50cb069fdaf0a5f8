package scheduler

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/common"
	"github.com/netlab/startnodes/common/log/tags"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

// Launcher starts the selected nodes of a project, one host queue per compute.
type Launcher struct {
	ctrl  Controller
	cfg   Config
	clock Clock
	stat  stats.StatsReceiver
	out   io.Writer
}

// NewLauncher builds a Launcher. Progress lines are written to out; nil clock,
// stat and out default to the real clock, no stats and no output.
func NewLauncher(ctrl Controller, cfg Config, clock Clock, stat stats.StatsReceiver, out io.Writer) *Launcher {
	if clock == nil {
		clock = RealClock()
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	if out == nil {
		out = ioutil.Discard
	}
	return &Launcher{ctrl: ctrl, cfg: cfg, clock: clock, stat: stat, out: out}
}

// Summary describes what a run did, including runs that were aborted.
// Started is in the order the start commands were accepted.
type Summary struct {
	RunID      string
	Started    []domain.Node
	Skipped    int
	PerCompute map[string]int
	Elapsed    time.Duration
}

func (s *Summary) String() string {
	return fmt.Sprintf("run %s: started %d nodes %v, skipped %d already started, in %s",
		s.RunID, len(s.Started), s.PerCompute, s.Skipped, s.Elapsed)
}

// Plan lists the project's nodes and returns the per-host queues a run would
// work through, plus the number of selected nodes already started.
func (l *Launcher) Plan(ctx context.Context, projectId string, selection []string) ([]*domain.HostQueue, int, error) {
	all, err := l.ctrl.ListNodes(ctx, projectId)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, domain.NewInterruptedError(ctx.Err())
		}
		return nil, 0, domain.NewConnectivityError("Can't get node information", err)
	}
	for i := range all {
		if all[i].ProjectId == "" {
			all[i].ProjectId = projectId
		}
	}

	selected, err := ResolveSelection(all, selection)
	if err != nil {
		return nil, 0, err
	}
	queues, skipped := GroupByCompute(selected)
	return queues, skipped, nil
}

// StartNodes starts every selected node that is not started yet. Having
// nothing left to start is not an error. On error the returned Summary still
// lists the nodes started before the run was aborted.
func (l *Launcher) StartNodes(ctx context.Context, projectId string, selection []string) (*Summary, error) {
	lt := tags.LogTags{RunID: common.GenUUID(), ProjectID: projectId}
	begin := l.clock.Now()
	defer l.stat.Latency(stats.LauncherRunLatency_ms).Time().Stop()

	summary := &Summary{RunID: lt.RunID, PerCompute: map[string]int{}}
	if err := l.cfg.Validate(); err != nil {
		return summary, err
	}
	queues, skipped, err := l.Plan(ctx, projectId, selection)
	if err != nil {
		return summary, err
	}
	summary.Skipped = skipped
	l.stat.Counter(stats.LauncherSkippedStartedCounter).Inc(int64(skipped))
	if len(queues) == 0 {
		log.WithFields(lt.Fields()).Info("All selected nodes are already started")
		return summary, nil
	}

	queued := 0
	tasks := make([]*launchTask, 0, len(queues))
	probe := &loadProbe{ctrl: l.ctrl, stat: l.stat, tags: lt}
	issuer := &startIssuer{ctrl: l.ctrl, stat: l.stat, out: l.out, tags: lt}
	for _, q := range queues {
		queued += len(q.Nodes)
		tasks = append(tasks, newLaunchTask(q, l.cfg, probe, issuer, l.stat, lt))
	}
	l.stat.Gauge(stats.LauncherHostsGauge).Update(int64(len(queues)))
	l.stat.Gauge(stats.LauncherQueuedNodesGauge).Update(int64(queued))

	fmt.Fprintln(l.out, "Starting nodes one by one")
	log.WithFields(lt.Fields()).Infof("Starting %d nodes on %d computes, %d already started", queued, len(queues), skipped)

	err = newCoordinator(tasks, l.clock, l.cfg, l.stat, lt).run(ctx)

	summary.Started = issuer.started
	for _, n := range issuer.started {
		summary.PerCompute[n.ComputeId]++
	}
	summary.Elapsed = l.clock.Now().Sub(begin)
	log.WithFields(lt.Fields()).Info(summary)
	return summary, err
}
