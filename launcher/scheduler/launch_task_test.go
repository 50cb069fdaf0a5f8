package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/netlab/startnodes/common/log/tags"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

func makeTask(ctrl Controller, nodes ...domain.Node) (*launchTask, *startIssuer) {
	stat := stats.NilStatsReceiver()
	lt := tags.LogTags{RunID: "run", ProjectID: "p1"}
	probe := &loadProbe{ctrl: ctrl, stat: stat, tags: lt}
	issuer := &startIssuer{ctrl: ctrl, stat: stat, out: &bytes.Buffer{}, tags: lt}
	q := domain.NewHostQueue(nodes[0].ComputeId, nodes...)
	return newLaunchTask(q, DefaultConfig(), probe, issuer, stat, lt), issuer
}

func TestTaskStateNames(t *testing.T) {
	assert.Equal(t, "ADMISSION_WAIT", admissionWait.String())
	assert.Equal(t, "LAUNCHING", launching.String())
	assert.Equal(t, "SETTLE_WAIT", settleWait.String())
	assert.Equal(t, "DONE", taskDone.String())
	assert.Equal(t, "UNKNOWN", taskState(42).String())
}

func TestTaskEmptyQueueIsDone(t *testing.T) {
	stat := stats.NilStatsReceiver()
	task := newLaunchTask(domain.NewHostQueue("A"), DefaultConfig(), nil, nil, stat, tags.LogTags{})
	assert.True(t, task.done())

	wait, err := task.poll(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, time.Duration(0), wait)
}

func TestTaskTransitions(t *testing.T) {
	ctrl := newFakeController(NewSimClock(time.Unix(0, 0)))
	ctrl.loads["A"] = []float64{80}
	task, issuer := makeTask(ctrl,
		node("1", "one", domain.NodeTypeQemu, "A"),
		node("2", "two", domain.NodeTypeVPCS, "A"))
	ctrl.nodes = task.queue.Nodes
	assert.Equal(t, admissionWait, task.state)

	// busy host: stay in admission wait for one poll interval
	wait, err := task.poll(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 4*time.Second, wait)
	assert.Equal(t, admissionWait, task.state)
	assert.False(t, task.due(DefaultConfig().ReadyTolerance))
	assert.Empty(t, issuer.started)

	// admitted: launch then settle after a heavy node
	task.advance(4 * time.Second)
	assert.True(t, task.due(0))
	wait, err = task.poll(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 4*time.Second, wait)
	assert.Equal(t, settleWait, task.state)
	assert.Equal(t, []string{"one"}, names(issuer.started))

	// last node: done, no trailing settle
	task.advance(10 * time.Second)
	assert.Equal(t, time.Duration(0), task.wait)
	wait, err = task.poll(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, time.Duration(0), wait)
	assert.True(t, task.done())
	assert.Equal(t, []string{"one", "two"}, names(issuer.started))
}

func TestTaskDueWithinTolerance(t *testing.T) {
	ctrl := newFakeController(NewSimClock(time.Unix(0, 0)))
	task, _ := makeTask(ctrl, node("1", "one", domain.NodeTypeVPCS, "A"))
	task.wait = 2 * time.Second
	task.advance(1950 * time.Millisecond)
	assert.True(t, task.due(90*time.Millisecond))
	assert.False(t, task.due(10*time.Millisecond))
}

func TestTaskStartFailureStaysLaunching(t *testing.T) {
	ctrl := newFakeController(NewSimClock(time.Unix(0, 0)))
	task, issuer := makeTask(ctrl, node("1", "one", domain.NodeTypeVPCS, "A"))
	ctrl.nodes = task.queue.Nodes
	ctrl.failStart["1"] = fmt.Errorf("boom")

	_, err := task.poll(context.Background())
	assert.True(t, domain.IsStartCommandError(err))
	assert.Equal(t, launching, task.state)
	assert.Equal(t, 1, task.queue.Remaining())
	assert.Empty(t, issuer.started)
}

func TestTaskProbeFailure(t *testing.T) {
	ctrl := newFakeController(NewSimClock(time.Unix(0, 0)))
	ctrl.failProbe["A"] = fmt.Errorf("timeout")
	task, _ := makeTask(ctrl, node("1", "one", domain.NodeTypeVPCS, "A"))

	_, err := task.poll(context.Background())
	assert.True(t, domain.IsConnectivityError(err))
	assert.Equal(t, admissionWait, task.state)
	assert.Empty(t, ctrl.recorded())
}

func TestTaskBusyWaitIsAdmissionPoll(t *testing.T) {
	ctrl := newFakeController(NewSimClock(time.Unix(0, 0)))
	ctrl.loads["A"] = []float64{75, 75, 75}
	task, issuer := makeTask(ctrl, node("1", "one", domain.NodeTypeVPCS, "A"))
	task.cfg.AdmissionPoll = 1500 * time.Millisecond

	// every busy answer waits the same interval, no growth
	for i := 0; i < 3; i++ {
		wait, err := task.poll(context.Background())
		assert.Nil(t, err)
		assert.Equal(t, 1500*time.Millisecond, wait)
		assert.Equal(t, admissionWait, task.state)
		task.advance(wait)
	}
	assert.Empty(t, issuer.started)

	wait, err := task.poll(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, time.Duration(0), wait)
	assert.True(t, task.done())
}
