package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/common/log/tags"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

type taskState int

const (
	admissionWait taskState = iota
	launching
	settleWait
	taskDone
)

func (s taskState) String() string {
	switch s {
	case admissionWait:
		return "ADMISSION_WAIT"
	case launching:
		return "LAUNCHING"
	case settleWait:
		return "SETTLE_WAIT"
	case taskDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// launchTask starts the nodes of one host queue strictly in order:
//
//   ADMISSION_WAIT -> LAUNCHING -> SETTLE_WAIT -> ADMISSION_WAIT ... -> DONE
//
// The task never sleeps itself. poll() runs it until it needs to wait and
// returns that wait; the coordinator calls advance() as shared time passes
// and polls the task again once its wait has elapsed. The first node of a
// queue has no pre-delay and the last one has no settle delay.
type launchTask struct {
	queue *domain.HostQueue
	state taskState
	wait  time.Duration

	cfg    Config
	probe  *loadProbe
	issuer *startIssuer
	stat   stats.StatsReceiver
	tags   tags.LogTags
}

func newLaunchTask(queue *domain.HostQueue, cfg Config, probe *loadProbe, issuer *startIssuer, stat stats.StatsReceiver, lt tags.LogTags) *launchTask {
	t := &launchTask{
		queue:  queue,
		state:  admissionWait,
		cfg:    cfg,
		probe:  probe,
		issuer: issuer,
		stat:   stat.Scope("compute", queue.ComputeId),
		tags:   lt.WithCompute(queue.ComputeId),
	}
	if queue.Done() {
		t.state = taskDone
	}
	return t
}

// advance accounts for elapsed time on the shared clock.
func (t *launchTask) advance(elapsed time.Duration) {
	t.wait -= elapsed
	if t.wait < 0 {
		t.wait = 0
	}
}

// due reports whether the pending wait has elapsed, within tolerance.
func (t *launchTask) due(tolerance time.Duration) bool {
	return t.wait <= tolerance
}

func (t *launchTask) done() bool {
	return t.state == taskDone
}

// poll moves the task forward until it has to wait, and returns that wait.
// Errors from the load probe or the start command are returned as-is and
// leave the task where it failed.
func (t *launchTask) poll(ctx context.Context) (time.Duration, error) {
	t.wait = 0
	for {
		switch t.state {
		case settleWait:
			t.state = admissionWait

		case admissionWait:
			load, err := t.probe.load(ctx, t.queue.ComputeId)
			if err != nil {
				return 0, err
			}
			if load >= t.cfg.CPUThreshold {
				t.wait = t.cfg.AdmissionPoll
				t.stat.Counter(stats.LauncherAdmissionDeferredCounter).Inc(1)
				log.WithFields(t.tags.Fields()).Infof("Compute busy (cpu %.1f%%), checking again in %s", load, t.wait)
				return t.wait, nil
			}
			t.state = launching

		case launching:
			node, _ := t.queue.Head()
			if err := t.issuer.start(ctx, node); err != nil {
				return 0, err
			}
			t.queue.Advance()
			if t.queue.Done() {
				t.state = taskDone
				return 0, nil
			}
			t.state = settleWait
			t.wait = t.cfg.settleDelay(node)
			log.WithFields(t.tags.WithNode(node.Id, node.Name).Fields()).
				Debugf("Settling %s after %s node", t.wait, node.Type)
			return t.wait, nil

		case taskDone:
			return 0, nil
		}
	}
}
