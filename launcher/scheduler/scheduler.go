// Package scheduler starts the nodes of a project one compute host at a time:
// every host gets a sequential launch task gated by the host's CPU load, and
// a single coordinator loop multiplexes those tasks so hosts make progress
// side by side.
package scheduler

//go:generate mockgen -source=scheduler.go -package=scheduler -destination=controller_mock.go

import (
	"context"

	"github.com/netlab/startnodes/launcher/domain"
)

// Controller is the part of the controller API the launcher consumes. One
// Controller is shared by every probe and start of a run, and is only ever
// called from the coordinator's control flow.
type Controller interface {
	ListNodes(ctx context.Context, projectId string) ([]domain.Node, error)

	GetCompute(ctx context.Context, computeId string) (domain.ComputeHost, error)

	StartNode(ctx context.Context, projectId, nodeId string) error
}
