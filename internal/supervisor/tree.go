// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package supervisor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// Supervisor names as they appear in suture events.
const (
	rootName      = "talentmatch"
	dataName      = "data-layer"
	messagingName = "messaging-layer"
	apiName       = "api-layer"
)

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout is the maximum time to wait for each service to stop.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	def := DefaultTreeConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = def.FailureThreshold
	}
	if c.FailureDecay <= 0 {
		c.FailureDecay = def.FailureDecay
	}
	if c.FailureBackoff <= 0 {
		c.FailureBackoff = def.FailureBackoff
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	return c
}

// SupervisorTree owns every long-running service of the matching engine.
//
// The tree is organized into three layers:
//   - data: the periodic recommender trainer
//   - messaging: the interaction feed consumer (if enabled)
//   - api: the HTTP server
//
// Each layer restarts its own services, so a consumer crash does not take
// the API down.
type SupervisorTree struct {
	root      *suture.Supervisor
	data      *suture.Supervisor
	messaging *suture.Supervisor
	api       *suture.Supervisor
	logger    *slog.Logger
	config    TreeConfig

	mu     sync.Mutex
	counts LayerCounts
}

// LayerCounts is the number of services added to each layer.
type LayerCounts struct {
	Data      int
	Messaging int
	API       int
}

// NewSupervisorTree creates the tree. Zero config fields take their defaults.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	config = config.withDefaults()

	// MustHook has a pointer receiver.
	handler := &sutureslog.Handler{Logger: logger}

	spec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	rootSpec := spec
	rootSpec.EventHook = handler.MustHook()

	// Children inherit the root's EventHook when added.
	root := suture.New(rootName, rootSpec)
	data := suture.New(dataName, spec)
	messaging := suture.New(messagingName, spec)
	api := suture.New(apiName, spec)

	root.Add(data)
	root.Add(messaging)
	root.Add(api)

	return &SupervisorTree{
		root:      root,
		data:      data,
		messaging: messaging,
		api:       api,
		logger:    logger,
		config:    config,
	}, nil
}

// Root returns the root supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// AddDataService adds a service to the data layer (model training).
func (t *SupervisorTree) AddDataService(svc suture.Service) suture.ServiceToken {
	t.count(func(c *LayerCounts) { c.Data++ })
	return t.data.Add(svc)
}

// AddMessagingService adds a service to the messaging layer (feed consumer).
func (t *SupervisorTree) AddMessagingService(svc suture.Service) suture.ServiceToken {
	t.count(func(c *LayerCounts) { c.Messaging++ })
	return t.messaging.Add(svc)
}

// AddAPIService adds a service to the API layer (HTTP server).
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	t.count(func(c *LayerCounts) { c.API++ })
	return t.api.Add(svc)
}

func (t *SupervisorTree) count(inc func(*LayerCounts)) {
	t.mu.Lock()
	inc(&t.counts)
	t.mu.Unlock()
}

// Counts reports how many services each layer holds.
func (t *SupervisorTree) Counts() LayerCounts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts
}

func (t *SupervisorTree) logStart() {
	c := t.Counts()
	t.logger.Info("supervisor tree starting",
		"shutdown_timeout", t.config.ShutdownTimeout,
		"data_services", c.Data,
		"messaging_services", c.Messaging,
		"api_services", c.API,
	)
}

// Serve runs the tree until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	t.logStart()
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives exactly
// one result when the tree stops and is never closed.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	t.logStart()
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that did not stop within the
// shutdown timeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
