// Package config reads the launcher's tuning: admission threshold, pacing
// delays and controller transport settings.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/luci/go-render/render"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/netlab/startnodes/controller"
	"github.com/netlab/startnodes/launcher/domain"
	"github.com/netlab/startnodes/launcher/scheduler"
)

// JSONConfig is the serialized form of the launcher tuning. Durations are
// strings understood by time.ParseDuration.
type JSONConfig struct {
	CPUThreshold      float64  `json:"CPUThreshold"`   // percent, starts need a strictly lower load
	AdmissionPoll     string   `json:"AdmissionPoll"`  // wait before re-probing a busy host
	HeavySettle       string   `json:"HeavySettle"`    // after starting a HeavyNodeTypes node
	LightSettle       string   `json:"LightSettle"`    // after starting any other node
	HeavyNodeTypes    []string `json:"HeavyNodeTypes"` // replaces the default list when set
	ReadyTolerance    string   `json:"ReadyTolerance"`
	HTTPTries         int      `json:"HTTPTries"`
	RequestTimeout    string   `json:"RequestTimeout"`
	RequestsPerSecond float64  `json:"RequestsPerSecond"` // 0 means unlimited
}

func (c JSONConfig) String() string {
	return fmt.Sprintf("JSONConfig: CPUThreshold: %.1f, AdmissionPoll: %s, HeavySettle: %s, LightSettle: %s, "+
		"HeavyNodeTypes: %v, ReadyTolerance: %s, HTTPTries: %d, RequestTimeout: %s, RequestsPerSecond: %.1f",
		c.CPUThreshold, c.AdmissionPoll, c.HeavySettle, c.LightSettle,
		c.HeavyNodeTypes, c.ReadyTolerance, c.HTTPTries, c.RequestTimeout, c.RequestsPerSecond)
}

func presetNames() []string {
	keys := make([]string, 0, len(Configs))
	for k := range Configs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetConfigText finds the text for a config selector: a preset name, the
// path of a JSON file, or literal JSON.
func GetConfigText(configSelector string) ([]byte, error) {
	if text, ok := Configs[configSelector]; ok {
		return []byte(text), nil
	}
	if strings.HasPrefix(strings.TrimSpace(configSelector), "{") {
		log.Infof("Using literal JSON config: %s", configSelector)
		return []byte(configSelector), nil
	}
	if _, err := os.Stat(configSelector); err == nil {
		log.Infof("Reading config file %s", configSelector)
		return ioutil.ReadFile(configSelector)
	}
	return nil, fmt.Errorf("invalid configuration %s, supported values are %v, a JSON file or JSON text", configSelector, presetNames())
}

// GetConfig parses the selected config on top of the default preset, so
// fields it leaves out keep their default values.
func GetConfig(configSelector string) (*JSONConfig, error) {
	config := &JSONConfig{}
	if err := json.Unmarshal([]byte(Configs["default"]), config); err != nil {
		return nil, errors.Wrap(err, "couldn't parse the default config")
	}
	if configSelector == "" || configSelector == "default" {
		return config, nil
	}

	text, err := GetConfigText(configSelector)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(text, config); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse config %s", configSelector)
	}
	log.Debugf("Config %s: %s", configSelector, render.Render(config))
	return config, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: %s is negative", name, value)
	}
	return d, nil
}

// Create validates the config and returns the scheduler tuning.
func (c *JSONConfig) Create() (scheduler.Config, error) {
	cfg := scheduler.Config{CPUThreshold: c.CPUThreshold}
	if c.CPUThreshold <= 0 || c.CPUThreshold > 100 {
		return cfg, fmt.Errorf("invalid CPUThreshold: %.1f is not in (0, 100]", c.CPUThreshold)
	}

	var err error
	if cfg.AdmissionPoll, err = parseDuration("AdmissionPoll", c.AdmissionPoll); err != nil {
		return cfg, err
	}
	if cfg.AdmissionPoll == 0 {
		return cfg, fmt.Errorf("invalid AdmissionPoll: must be positive")
	}
	if cfg.HeavySettle, err = parseDuration("HeavySettle", c.HeavySettle); err != nil {
		return cfg, err
	}
	if cfg.LightSettle, err = parseDuration("LightSettle", c.LightSettle); err != nil {
		return cfg, err
	}
	if cfg.ReadyTolerance, err = parseDuration("ReadyTolerance", c.ReadyTolerance); err != nil {
		return cfg, err
	}

	types := make([]domain.NodeType, len(c.HeavyNodeTypes))
	for i, t := range c.HeavyNodeTypes {
		types[i] = domain.NodeType(t)
	}
	cfg.HeavyTypes = domain.NewTypeSet(types...)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ControllerOptions returns the transport settings for the controller client.
func (c *JSONConfig) ControllerOptions() (controller.Options, error) {
	timeout, err := parseDuration("RequestTimeout", c.RequestTimeout)
	if err != nil {
		return controller.Options{}, err
	}
	if c.RequestsPerSecond < 0 {
		return controller.Options{}, fmt.Errorf("invalid RequestsPerSecond: %.1f is negative", c.RequestsPerSecond)
	}
	return controller.Options{
		HTTPTries:         c.HTTPTries,
		Timeout:           timeout,
		RequestsPerSecond: c.RequestsPerSecond,
	}, nil
}
