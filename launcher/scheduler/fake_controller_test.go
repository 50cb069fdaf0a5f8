package scheduler

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/common/log/hooks"
	"github.com/netlab/startnodes/launcher/domain"
)

// Used to get proper logging from tests...
func init() {
	if loglevel := os.Getenv(hooks.DebugEnvVar); loglevel != "" {
		level, err := log.ParseLevel(loglevel)
		if err != nil {
			log.Error(err)
			return
		}
		log.SetLevel(level)
		hooks.AddContextHookFromEnv(log.StandardLogger())
	} else {
		log.SetLevel(log.ErrorLevel)
	}
}

const (
	probeEvent = "probe"
	startEvent = "start"
)

type event struct {
	kind    string
	compute string
	node    domain.Node // set for starts
	load    float64     // set for probes
	at      time.Duration
}

func (e event) String() string {
	if e.kind == probeEvent {
		return fmt.Sprintf("%s probe %s %.0f%%", e.at, e.compute, e.load)
	}
	return fmt.Sprintf("%s start %s/%s", e.at, e.compute, e.node.Name)
}

// fakeController serves a fixed node list and scripted loads, and records
// every probe and start against a simulated clock.
type fakeController struct {
	mu    sync.Mutex
	clock *SimClock
	nodes []domain.Node

	// Loads returned per compute in order; once used up every probe returns idleLoad.
	loads     map[string][]float64
	failStart map[string]error // by node id
	failProbe map[string]error // by compute id
	listErr   error
	onStart   func(n domain.Node)

	events []event
}

const idleLoad = 10.0

func newFakeController(clock *SimClock, nodes ...domain.Node) *fakeController {
	return &fakeController{
		clock:     clock,
		nodes:     nodes,
		loads:     map[string][]float64{},
		failStart: map[string]error{},
		failProbe: map[string]error{},
	}
}

func (f *fakeController) ListNodes(ctx context.Context, projectId string) ([]domain.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Node(nil), f.nodes...), nil
}

func (f *fakeController) GetCompute(ctx context.Context, computeId string) (domain.ComputeHost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failProbe[computeId]; err != nil {
		return domain.ComputeHost{}, err
	}
	load := idleLoad
	if seq := f.loads[computeId]; len(seq) > 0 {
		load, f.loads[computeId] = seq[0], seq[1:]
	}
	f.events = append(f.events, event{kind: probeEvent, compute: computeId, load: load, at: f.clock.Elapsed()})
	return domain.ComputeHost{Id: computeId, Connected: true, CPUUsagePercent: load}, nil
}

func (f *fakeController) StartNode(ctx context.Context, projectId, nodeId string) error {
	f.mu.Lock()
	var node domain.Node
	for _, n := range f.nodes {
		if n.Id == nodeId {
			node = n
		}
	}
	f.events = append(f.events, event{kind: startEvent, compute: node.ComputeId, node: node, at: f.clock.Elapsed()})
	err := f.failStart[nodeId]
	hook := f.onStart
	f.mu.Unlock()
	if hook != nil {
		hook(node)
	}
	return err
}

func (f *fakeController) recorded() []event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]event(nil), f.events...)
}

func (f *fakeController) starts() []event {
	var out []event
	for _, e := range f.recorded() {
		if e.kind == startEvent {
			out = append(out, e)
		}
	}
	return out
}

func startedNames(events []event) []string {
	var out []string
	for _, e := range events {
		if e.kind == startEvent {
			out = append(out, e.node.Name)
		}
	}
	return out
}

func onCompute(events []event, computeId string) []event {
	var out []event
	for _, e := range events {
		if e.compute == computeId {
			out = append(out, e)
		}
	}
	return out
}

func node(id, name string, nt domain.NodeType, computeId string) domain.Node {
	return domain.Node{Id: id, Name: name, Type: nt, Status: domain.NodeStopped, ComputeId: computeId, ProjectId: "p1"}
}
