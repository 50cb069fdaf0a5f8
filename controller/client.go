// Package controller is a client for the controller's HTTP/JSON API: it
// lists project nodes, reads compute host load and starts nodes.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/netlab/startnodes/common"
	"github.com/netlab/startnodes/common/stats"
	"github.com/netlab/startnodes/launcher/domain"
	"github.com/netlab/startnodes/launcher/scheduler"
)

var _ scheduler.Controller = (*Client)(nil)

// HTTPClient is satisfied by *pester.Client and *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a request the controller answered with a failure status.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Options tune the transport. Zero values fall back to the defaults in common.
type Options struct {
	// Attempts per GET request; 0 and 1 both mean a single attempt.
	HTTPTries int
	// Attempts for the /v2/version probe in Connect.
	ConnectTries int
	Timeout      time.Duration
	// 0 means unlimited.
	RequestsPerSecond float64

	// Used between attempts, pester.ExponentialBackoff and
	// backoff.NewExponentialBackOff when unset.
	RetryBackoff   pester.BackoffStrategy
	ConnectBackOff func() backoff.BackOff
}

// Client talks to one controller. Requests that only read state are retried
// on transport errors and 5xx answers; start commands are sent exactly once.
type Client struct {
	baseURL  string
	user     string
	password string

	get     HTTPClient
	post    HTTPClient
	limiter *rate.Limiter
	stat    stats.StatsReceiver

	connectTries   int
	connectBackOff func() backoff.BackOff
}

func makePesterClient(tries int, timeout time.Duration, strategy pester.BackoffStrategy, stat stats.StatsReceiver) *pester.Client {
	client := pester.NewExtendedClient(&http.Client{Timeout: timeout})
	client.Backoff = strategy
	client.MaxRetries = tries
	client.LogHook = func(e pester.ErrEntry) {
		if e.Attempt >= tries {
			log.Errorf("Giving up after attempt %d: %+v", e.Attempt, e)
			return
		}
		stat.Counter(stats.ControllerRetryCounter).Inc(1)
		log.Errorf("Retrying after failed attempt: %+v", e)
	}
	return client
}

// NewClient makes a client for the controller located by params.
func NewClient(params Params, opts Options, stat stats.StatsReceiver) *Client {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	stat = stat.Scope("controller")
	if opts.HTTPTries < 1 {
		opts.HTTPTries = common.DefaultHttpTries
	}
	if opts.ConnectTries < 1 {
		opts.ConnectTries = common.DefaultConnectTries
	}
	if opts.Timeout <= 0 {
		opts.Timeout = common.DefaultClientTimeout
	}
	if opts.RetryBackoff == nil {
		opts.RetryBackoff = pester.ExponentialBackoff
	}
	if opts.ConnectBackOff == nil {
		opts.ConnectBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		baseURL:        strings.TrimSuffix(params.URL, "/"),
		user:           params.User,
		password:       params.Password,
		get:            makePesterClient(opts.HTTPTries, opts.Timeout, opts.RetryBackoff, stat),
		post:           makePesterClient(1, opts.Timeout, opts.RetryBackoff, stat),
		limiter:        rate.NewLimiter(limit, 1),
		stat:           stat,
		connectTries:   opts.ConnectTries,
		connectBackOff: opts.ConnectBackOff,
	}
}

// Connect checks that the controller is reachable and accepts our
// credentials, retrying with exponential backoff.
func (c *Client) Connect(ctx context.Context) (Version, error) {
	var version Version
	b := backoff.WithContext(backoff.WithMaxRetries(c.connectBackOff(), uint64(c.connectTries-1)), ctx)
	err := backoff.Retry(func() error {
		err := c.do(ctx, c.get, "GET", "/v2/version", nil, &version)
		if err != nil {
			log.WithError(err).Warn("Controller not reachable")
		}
		return err
	}, b)
	if err != nil {
		if ctx.Err() != nil {
			return Version{}, domain.NewInterruptedError(ctx.Err())
		}
		return Version{}, domain.NewConnectivityError("Can't connect to controller", err)
	}
	log.Infof("Connected to controller %s, version %s", c.baseURL, version.Version)
	return version, nil
}

func (c *Client) ListNodes(ctx context.Context, projectId string) ([]domain.Node, error) {
	var records []nodeRecord
	if err := c.do(ctx, c.get, "GET", "/v2/projects/"+url.PathEscape(projectId)+"/nodes", nil, &records); err != nil {
		return nil, err
	}
	nodes := make([]domain.Node, 0, len(records))
	for _, r := range records {
		nodes = append(nodes, r.toDomain())
	}
	return nodes, nil
}

func (c *Client) GetCompute(ctx context.Context, computeId string) (domain.ComputeHost, error) {
	var record computeRecord
	if err := c.do(ctx, c.get, "GET", "/v2/computes/"+url.PathEscape(computeId), nil, &record); err != nil {
		return domain.ComputeHost{}, err
	}
	return record.toDomain(), nil
}

func (c *Client) StartNode(ctx context.Context, projectId, nodeId string) error {
	path := "/v2/projects/" + url.PathEscape(projectId) + "/nodes/" + url.PathEscape(nodeId) + "/start"
	return c.do(ctx, c.post, "POST", path, struct{}{}, nil)
}

// do sends one request and decodes a JSON answer into out, if out is set.
func (c *Client) do(ctx context.Context, client HTTPClient, method, path string, in, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	c.stat.Counter(stats.ControllerRequestCounter).Inc(1)
	defer c.stat.Latency(stats.ControllerRequestLatency_ms).Time().Stop()

	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return errors.Wrapf(err, "encoding %s %s", method, path)
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	log.Debugf("%s %s", method, path)
	resp, err := client.Do(req)
	if err != nil {
		c.stat.Counter(stats.ControllerRequestErrCounter).Inc(1)
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	data, readErr := ioutil.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.stat.Counter(stats.ControllerRequestErrCounter).Inc(1)
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var rec errorRecord
		if readErr == nil && json.Unmarshal(data, &rec) == nil {
			apiErr.Message = rec.Message
		}
		return apiErr
	}
	if readErr != nil {
		c.stat.Counter(stats.ControllerRequestErrCounter).Inc(1)
		return errors.Wrapf(readErr, "reading %s %s", method, path)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.stat.Counter(stats.ControllerRequestErrCounter).Inc(1)
		return errors.Wrapf(err, "decoding %s %s", method, path)
	}
	return nil
}
