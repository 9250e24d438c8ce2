package promptgen

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Workspace.
type Option func(*workspaceConfig)

// workspaceConfig holds the internal configuration for a Workspace.
type workspaceConfig struct {
	maxExpansionDepth int
	logger            *zap.Logger
}

// defaultWorkspaceConfig returns the default workspace configuration.
func defaultWorkspaceConfig() *workspaceConfig {
	return &workspaceConfig{
		maxExpansionDepth: DefaultMaxExpansionDepth,
		logger:            nil,
	}
}

// WithMaxExpansionDepth sets the maximum nesting depth for option expansion.
// Depth guards against option texts that keep referencing further groups.
// Default: 100
func WithMaxExpansionDepth(depth int) Option {
	return func(c *workspaceConfig) {
		if depth > 0 {
			c.maxExpansionDepth = depth
		}
	}
}

// WithLogger sets the logger for the workspace.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *workspaceConfig) {
		c.logger = logger
	}
}

// RenderOption is a functional option for a single render call.
type RenderOption func(*renderConfig)

// renderConfig holds per-render settings.
type renderConfig struct {
	seed    uint64
	seedSet bool
}

// WithSeed pins the random stream for a render call. Two renders of the
// same template against the same workspace with the same seed and slot
// values produce identical output.
func WithSeed(seed uint64) RenderOption {
	return func(c *renderConfig) {
		c.seed = seed
		c.seedSet = true
	}
}
