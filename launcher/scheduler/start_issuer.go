package scheduler

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/common/log/tags"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

// startIssuer sends the start command for a single node. There is no retry:
// any failure aborts the run as a StartCommandError naming the node.
type startIssuer struct {
	ctrl Controller
	stat stats.StatsReceiver
	out  io.Writer
	tags tags.LogTags

	// Nodes accepted by the controller, in start order.
	started []domain.Node
}

func (s *startIssuer) start(ctx context.Context, node domain.Node) error {
	stat := s.stat.Scope("compute", node.ComputeId)
	stat.Counter(stats.LauncherStartCounter).Inc(1)
	defer stat.Latency(stats.LauncherStartLatency_ms).Time().Stop()

	fmt.Fprintf(s.out, "Starting '%s'\n", node.Name)
	lf := s.tags.WithCompute(node.ComputeId).WithNode(node.Id, node.Name).Fields()

	if err := s.ctrl.StartNode(ctx, node.ProjectId, node.Id); err != nil {
		stat.Counter(stats.LauncherStartErrCounter).Inc(1)
		log.WithFields(lf).WithError(err).Error("Start command failed")
		return domain.NewStartCommandError(node, err)
	}

	s.started = append(s.started, node)
	stat.Counter(stats.LauncherStartOkCounter).Inc(1)
	log.WithFields(lf).Info("Started node")
	return nil
}
