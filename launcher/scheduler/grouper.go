package scheduler

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/launcher/domain"
)

// ResolveSelection picks the nodes to schedule out of every node of a
// project. Without selection tokens all nodes are picked. The result is
// sorted by lower-cased name, ties broken by id.
func ResolveSelection(all []domain.Node, items []string) ([]domain.Node, error) {
	if len(all) == 0 {
		return nil, domain.NewEmptySelectionError("No node in project")
	}

	ids, explicit := domain.ParseSelection(items)
	var selected []domain.Node
	if !explicit {
		selected = append(selected, all...)
	} else {
		if len(ids) == 0 {
			return nil, domain.NewEmptySelectionError("No node selected")
		}
		byId := make(map[string]domain.Node, len(all))
		for _, n := range all {
			byId[n.Id] = n
		}
		for _, id := range ids {
			n, ok := byId[id]
			if !ok {
				log.WithFields(log.Fields{"nodeID": id}).Warn("Selected node is not in project, skipping")
				continue
			}
			selected = append(selected, n)
		}
		if len(selected) == 0 {
			return nil, domain.NewEmptySelectionError("No node selected")
		}
	}

	sortByName(selected)
	return selected, nil
}

func sortByName(nodes []domain.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		ni, nj := strings.ToLower(nodes[i].Name), strings.ToLower(nodes[j].Name)
		if ni != nj {
			return ni < nj
		}
		return nodes[i].Id < nodes[j].Id
	})
}

// GroupByCompute drops nodes that are already started and splits the rest
// into one queue per compute host. Each queue is ordered by lower-cased
// name; queues are returned in order of their first node. skipped counts the
// already started nodes.
func GroupByCompute(nodes []domain.Node) (queues []*domain.HostQueue, skipped int) {
	sorted := append([]domain.Node(nil), nodes...)
	sortByName(sorted)

	byCompute := map[string]*domain.HostQueue{}
	for _, n := range sorted {
		if n.IsStarted() {
			skipped++
			continue
		}
		q, ok := byCompute[n.ComputeId]
		if !ok {
			q = domain.NewHostQueue(n.ComputeId)
			byCompute[n.ComputeId] = q
			queues = append(queues, q)
		}
		q.Nodes = append(q.Nodes, n)
	}
	return queues, skipped
}
