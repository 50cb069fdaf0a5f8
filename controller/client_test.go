package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/stretchr/testify/assert"

	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
)

// fakeServer answers the subset of the controller API the client uses.
type fakeServer struct {
	mu       sync.Mutex
	requests []string
	auth     []string
	failures map[string]int // remaining 503 answers per path
	starts   map[string]int // status answered per node start
}

func newFakeServer() *fakeServer {
	return &fakeServer{failures: map[string]int{}, starts: map[string]int{}}
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	user, pass, _ := r.BasicAuth()
	f.auth = append(f.auth, user+":"+pass)
	fail := f.failures[r.URL.Path]
	if fail > 0 {
		f.failures[r.URL.Path]--
	}
	f.mu.Unlock()

	if fail > 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	switch {
	case r.URL.Path == "/v2/version":
		fmt.Fprint(w, `{"version": "2.2.3", "local": true}`)
	case r.URL.Path == "/v2/projects/p1/nodes":
		fmt.Fprint(w, `[
			{"node_id": "n1", "name": "R1", "node_type": "dynamips", "status": "stopped", "compute_id": "local", "project_id": "p1", "console": 5000},
			{"node_id": "n2", "name": "PC1", "node_type": "vpcs", "status": "started", "compute_id": "vm", "project_id": "p1", "console": null}
		]`)
	case r.URL.Path == "/v2/computes/local":
		fmt.Fprint(w, `{"compute_id": "local", "host": "127.0.0.1", "name": "local", "connected": true, "cpu_usage_percent": 42.5, "memory_usage_percent": 30}`)
	case r.Method == "POST" && r.URL.Path == "/v2/projects/p1/nodes/n1/start":
		status := http.StatusOK
		f.mu.Lock()
		if s, ok := f.starts["n1"]; ok {
			status = s
		}
		f.mu.Unlock()
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprint(w, `{"node_id": "n1", "status": "started"}`)
		} else {
			json.NewEncoder(w).Encode(errorRecord{Message: "Node is locked", Status: status})
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "not found", "status": 404}`)
	}
}

func (f *fakeServer) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func noWait(int) time.Duration { return 0 }

func makeClient(srv *httptest.Server, stat stats.StatsReceiver) *Client {
	return NewClient(Params{URL: srv.URL + "/", User: "admin", Password: "secret"}, Options{
		HTTPTries:      3,
		ConnectTries:   2,
		RetryBackoff:   noWait,
		ConnectBackOff: func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}, stat)
}

func TestListNodes(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	nodes, err := makeClient(srv, nil).ListNodes(context.Background(), "p1")
	assert.Nil(t, err)
	assert.Equal(t, []domain.Node{
		{Id: "n1", Name: "R1", Type: domain.NodeTypeDynamips, Status: domain.NodeStopped, ComputeId: "local", ProjectId: "p1"},
		{Id: "n2", Name: "PC1", Type: domain.NodeTypeVPCS, Status: domain.NodeStarted, ComputeId: "vm", ProjectId: "p1"},
	}, nodes)
	assert.Equal(t, []string{"admin:secret"}, fake.auth)
}

func TestGetComputeRetries(t *testing.T) {
	fake := newFakeServer()
	fake.failures["/v2/computes/local"] = 2
	srv := httptest.NewServer(fake)
	defer srv.Close()

	reg := stats.NewFinagleStatsRegistry()
	stat, _ := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg }, 0)

	compute, err := makeClient(srv, stat).GetCompute(context.Background(), "local")
	assert.Nil(t, err)
	assert.Equal(t, domain.ComputeHost{Id: "local", Name: "local", Host: "127.0.0.1", Connected: true, CPUUsagePercent: 42.5}, compute)
	assert.Len(t, fake.recorded(), 3)

	stats.StatsOk("", reg, t, map[string]stats.Rule{
		"controller/" + stats.ControllerRequestCounter:    {Checker: stats.Int64EqTest, Value: 1},
		"controller/" + stats.ControllerRetryCounter:      {Checker: stats.Int64EqTest, Value: 2},
		"controller/" + stats.ControllerRequestErrCounter: {Checker: stats.DoesNotExistTest},
	})
}

func TestGetComputeUnknown(t *testing.T) {
	srv := httptest.NewServer(newFakeServer())
	defer srv.Close()

	_, err := makeClient(srv, nil).GetCompute(context.Background(), "nowhere")
	apiErr, ok := err.(*APIError)
	if assert.True(t, ok, "%v", err) {
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "GET /v2/computes/nowhere: 404 not found", apiErr.Error())
	}
}

func TestStartNode(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	assert.Nil(t, makeClient(srv, nil).StartNode(context.Background(), "p1", "n1"))
	assert.Equal(t, []string{"POST /v2/projects/p1/nodes/n1/start"}, fake.recorded())
}

func TestStartNodeIsNotRetried(t *testing.T) {
	fake := newFakeServer()
	fake.starts["n1"] = http.StatusServiceUnavailable
	srv := httptest.NewServer(fake)
	defer srv.Close()

	reg := stats.NewFinagleStatsRegistry()
	stat, _ := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg }, 0)
	err := makeClient(srv, stat).StartNode(context.Background(), "p1", "n1")
	assert.NotNil(t, err)
	assert.Len(t, fake.recorded(), 1)
	if !stats.StatsOk("", reg, t, map[string]stats.Rule{
		"controller/" + stats.ControllerRetryCounter: {Checker: stats.DoesNotExistTest},
	}) {
		t.Fatal("single attempt counted as a retry.")
	}
}

func TestExhaustedTriesCountOnlyRetries(t *testing.T) {
	fake := newFakeServer()
	fake.failures["/v2/computes/local"] = 5
	srv := httptest.NewServer(fake)
	defer srv.Close()

	reg := stats.NewFinagleStatsRegistry()
	stat, _ := stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg }, 0)
	_, err := makeClient(srv, stat).GetCompute(context.Background(), "local")
	assert.NotNil(t, err)
	if !stats.StatsOk("", reg, t, map[string]stats.Rule{
		"controller/" + stats.ControllerRetryCounter: {Checker: stats.Int64EqTest, Value: 2},
	}) {
		t.Fatal("final attempt counted as a retry.")
	}
}

func TestStartNodeConflict(t *testing.T) {
	fake := newFakeServer()
	fake.starts["n1"] = http.StatusConflict
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := makeClient(srv, nil).StartNode(context.Background(), "p1", "n1")
	assert.EqualError(t, err, "POST /v2/projects/p1/nodes/n1/start: 409 Node is locked")
}

func TestConnect(t *testing.T) {
	fake := newFakeServer()
	fake.failures["/v2/version"] = 3 // first attempt exhausts its 3 tries
	srv := httptest.NewServer(fake)
	defer srv.Close()

	version, err := makeClient(srv, nil).Connect(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, Version{Version: "2.2.3", Local: true}, version)
	assert.Len(t, fake.recorded(), 4)
}

func TestConnectFailure(t *testing.T) {
	srv := httptest.NewServer(newFakeServer())
	url := srv.URL
	srv.Close()

	client := NewClient(Params{URL: url}, Options{
		HTTPTries:      1,
		ConnectTries:   2,
		RetryBackoff:   noWait,
		ConnectBackOff: func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}, nil)
	_, err := client.Connect(context.Background())
	assert.True(t, domain.IsConnectivityError(err))
	assert.Contains(t, err.Error(), "Can't connect to controller")
}

func TestCancelledContext(t *testing.T) {
	fake := newFakeServer()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := makeClient(srv, nil).ListNodes(ctx, "p1")
	assert.NotNil(t, err)
}

func TestRateLimit(t *testing.T) {
	srv := httptest.NewServer(newFakeServer())
	defer srv.Close()

	client := NewClient(Params{URL: srv.URL}, Options{RequestsPerSecond: 20}, nil)
	begin := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.GetCompute(context.Background(), "local")
		assert.Nil(t, err)
	}
	// burst of one, then one request every 50ms
	assert.True(t, time.Since(begin) >= 90*time.Millisecond)
}

func TestConnectInterrupted(t *testing.T) {
	srv := httptest.NewServer(newFakeServer())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := makeClient(srv, nil).Connect(ctx)
	assert.True(t, domain.IsInterruptedError(err), "%v", err)
}
