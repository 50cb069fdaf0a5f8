package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/common/log/tags"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

// coordinator drives every launch task of a run on one control flow. Each
// step it sleeps for the smallest pending wait, then polls every task whose
// wait has elapsed, in the order the hosts were first seen. Tasks are never
// polled concurrently, so the Controller is never used from two goroutines.
//
// The first error aborts the run: no task is polled again and nothing already
// started is undone.
type coordinator struct {
	// Owned by the coordinator for the lifetime of one run.
	tasks map[string]*launchTask
	order []string

	clock Clock
	cfg   Config
	stat  stats.StatsReceiver
	tags  tags.LogTags
}

func newCoordinator(tasks []*launchTask, clock Clock, cfg Config, stat stats.StatsReceiver, lt tags.LogTags) *coordinator {
	c := &coordinator{
		tasks: map[string]*launchTask{},
		clock: clock,
		cfg:   cfg,
		stat:  stat,
		tags:  lt,
	}
	for _, t := range tasks {
		if t.done() {
			continue
		}
		c.tasks[t.queue.ComputeId] = t
		c.order = append(c.order, t.queue.ComputeId)
	}
	return c
}

// minWait is the smallest pending wait across the active tasks.
func (c *coordinator) minWait() time.Duration {
	min := time.Duration(-1)
	for _, t := range c.tasks {
		if min < 0 || t.wait < min {
			min = t.wait
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

func (c *coordinator) run(ctx context.Context) error {
	for len(c.tasks) > 0 {
		if err := ctx.Err(); err != nil {
			return c.interrupted(err)
		}

		delay := c.minWait()
		if delay > c.cfg.ReadyTolerance {
			c.stat.Counter(stats.LauncherWaitCounter).Inc(1)
			lat := c.stat.Latency(stats.LauncherWaitLatency_ms).Time()
			err := c.clock.Sleep(ctx, delay)
			lat.Stop()
			if err != nil {
				return c.interrupted(err)
			}
		}

		for _, computeId := range c.order {
			t := c.tasks[computeId]
			t.advance(delay)
			if !t.due(c.cfg.ReadyTolerance) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return c.interrupted(err)
			}
			if _, err := t.poll(ctx); err != nil {
				if ctx.Err() != nil {
					return c.interrupted(ctx.Err())
				}
				log.WithFields(t.tags.Fields()).WithError(err).Error("Aborting run")
				return err
			}
			if t.done() {
				log.WithFields(t.tags.Fields()).Infof("All %d nodes of compute started", len(t.queue.Nodes))
				delete(c.tasks, computeId)
			}
		}
		c.compact()
	}
	return nil
}

// compact drops retired tasks from the polling order.
func (c *coordinator) compact() {
	order := c.order[:0]
	for _, id := range c.order {
		if _, ok := c.tasks[id]; ok {
			order = append(order, id)
		}
	}
	c.order = order
}

func (c *coordinator) interrupted(err error) error {
	c.stat.Counter(stats.LauncherInterruptedCounter).Inc(1)
	log.WithFields(c.tags.Fields()).Warn("Run interrupted")
	return domain.NewInterruptedError(err)
}
