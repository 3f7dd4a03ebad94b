// File: port/options.go
// Package port defines functional options for Port construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package port

import (
	"github.com/momentics/hioload-wepoll/api"
	"github.com/momentics/hioload-wepoll/control"
	"github.com/momentics/hioload-wepoll/pool"
)

// DefaultMaxCompletions caps the records dequeued per Poll iteration.
const DefaultMaxCompletions = 256

// Config holds Port settings. Zero numeric fields select defaults.
type Config struct {
	// Name prefixes metric keys and names the debug probe.
	Name string

	// PollGroupCapacity is the member limit of each poll group.
	PollGroupCapacity int

	// MaxCompletions bounds one Dequeue batch in Poll.
	MaxCompletions int

	// HandleLimit bounds the number of registered sockets; zero is unbounded.
	HandleLimit int

	Logger  *control.Logger
	Metrics *control.MetricsRegistry
	Probes  api.ProbeRegistry
}

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		Name:              "port",
		PollGroupCapacity: pool.DefaultGroupCapacity,
		MaxCompletions:    DefaultMaxCompletions,
	}
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Name == "" {
		c.Name = def.Name
	}
	if c.PollGroupCapacity < 1 {
		c.PollGroupCapacity = def.PollGroupCapacity
	}
	if c.MaxCompletions < 1 {
		c.MaxCompletions = def.MaxCompletions
	}
	if c.HandleLimit < 0 {
		c.HandleLimit = 0
	}
}

// Option customizes port initialization.
type Option func(*Config)

// WithName sets the metric prefix and probe name.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithPollGroupCapacity overrides the poll group member limit.
func WithPollGroupCapacity(n int) Option {
	return func(c *Config) {
		c.PollGroupCapacity = n
	}
}

// WithMaxCompletions overrides the per-iteration dequeue batch size.
func WithMaxCompletions(n int) Option {
	return func(c *Config) {
		c.MaxCompletions = n
	}
}

// WithHandleLimit bounds the number of simultaneously registered sockets.
func WithHandleLimit(n int) Option {
	return func(c *Config) {
		c.HandleLimit = n
	}
}

// WithLogger attaches a structured logger.
func WithLogger(l *control.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMetrics publishes port counters into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(c *Config) {
		c.Metrics = mr
	}
}

// WithDebugProbes registers the port's DumpState under its name.
func WithDebugProbes(reg api.ProbeRegistry) Option {
	return func(c *Config) {
		c.Probes = reg
	}
}
