package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/netlab/startnodes/common"
	"github.com/netlab/startnodes/launcher/domain"
)

// Config tunes admission control and pacing.
//
// CPUThreshold - a node is only started while its host's CPU utilization
//   is strictly below this percentage.
// AdmissionPoll - how long a busy host waits before it is probed again.
// HeavySettle / LightSettle - delay after a start before the same host
//   considers its next node, depending on whether the started node's type
//   is in HeavyTypes.
// ReadyTolerance - remaining delays at or below this count as elapsed, and
//   the coordinator does not sleep for them.
type Config struct {
	CPUThreshold   float64
	AdmissionPoll  time.Duration
	HeavySettle    time.Duration
	LightSettle    time.Duration
	HeavyTypes     domain.TypeSet
	ReadyTolerance time.Duration
}

func DefaultConfig() Config {
	return Config{
		CPUThreshold:   common.DefaultCPUThreshold,
		AdmissionPoll:  common.DefaultAdmissionPoll,
		HeavySettle:    common.DefaultHeavySettle,
		LightSettle:    common.DefaultLightSettle,
		HeavyTypes:     domain.DefaultHeavyTypes(),
		ReadyTolerance: common.DefaultReadyTolerance,
	}
}

// Validate rejects a ReadyTolerance that would swallow a whole poll or
// settle delay: the coordinator skips sleeps at or below the tolerance, so
// such a wait would never actually be taken.
func (c Config) Validate() error {
	shortest := c.AdmissionPoll
	for _, d := range []time.Duration{c.HeavySettle, c.LightSettle} {
		if d < shortest {
			shortest = d
		}
	}
	if c.ReadyTolerance < 0 || c.ReadyTolerance >= shortest {
		return fmt.Errorf("invalid ReadyTolerance: %s must be below the shortest poll or settle delay (%s)",
			c.ReadyTolerance, shortest)
	}
	return nil
}

// settleDelay is the pause imposed after starting node.
func (c Config) settleDelay(node domain.Node) time.Duration {
	if c.HeavyTypes.Contains(node.Type) {
		return c.HeavySettle
	}
	return c.LightSettle
}

func (c Config) String() string {
	types := []string{}
	for t := range c.HeavyTypes {
		types = append(types, string(t))
	}
	sort.Strings(types)
	return fmt.Sprintf("Config: CPUThreshold: %.1f, AdmissionPoll: %s, HeavySettle: %s, LightSettle: %s, HeavyTypes: %v, ReadyTolerance: %s",
		c.CPUThreshold, c.AdmissionPoll, c.HeavySettle, c.LightSettle, types, c.ReadyTolerance)
}
