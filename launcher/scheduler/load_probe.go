package scheduler

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/common/log/tags"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

// loadProbe reads a compute host's current CPU utilization. Values are never
// cached since the load moves quickly while nodes boot.
type loadProbe struct {
	ctrl Controller
	stat stats.StatsReceiver
	tags tags.LogTags
}

// load returns the host's CPU utilization in percent. Failures mean the
// controller is unreachable and are returned as ConnectivityError.
func (p *loadProbe) load(ctx context.Context, computeId string) (float64, error) {
	stat := p.stat.Scope("compute", computeId)
	stat.Counter(stats.LauncherLoadProbeCounter).Inc(1)

	compute, err := p.ctrl.GetCompute(ctx, computeId)
	if err != nil {
		stat.Counter(stats.LauncherLoadProbeErrCounter).Inc(1)
		log.WithFields(p.tags.WithCompute(computeId).Fields()).
			WithError(err).
			Error("Can't get compute load")
		return 0, domain.NewConnectivityError("Can't get load of compute '"+computeId+"'", err)
	}

	stat.GaugeFloat(stats.LauncherComputeCPUGauge).Update(compute.CPUUsagePercent)
	log.WithFields(p.tags.WithCompute(computeId).Fields()).
		Debugf("cpu usage %.1f%%", compute.CPUUsagePercent)
	return compute.CPUUsagePercent, nil
}
