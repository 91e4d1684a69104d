// Package policysource adapts the environment-backed policy configuration to
// the engine's ConfigSource port. Values are re-read on every call, so limits
// changed in the environment take effect without a restart.
package policysource

import (
	"context"

	"cabin-reserve/internal/pkg/config"
	"cabin-reserve/internal/usecase/commands"
)

type EnvSource struct{}

func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

func (s *EnvSource) PolicySnapshot(_ context.Context) (commands.PolicySnapshot, error) {
	cfg, err := config.LoadPolicyConfig()
	if err != nil {
		return commands.PolicySnapshot{}, err
	}
	return commands.PolicySnapshot{
		StandardTimeoutDays:     cfg.StandardTimeoutDays,
		CancellationTimeoutDays: cfg.CancellationTimeoutDays,
		MaxReservationsPerYear:  cfg.MaxReservationsPerYear,
	}, nil
}

// FixedSource returns the same snapshot on every call, for tests and
// deployments without hot reload.
type FixedSource struct {
	Snapshot commands.PolicySnapshot
}

func (s *FixedSource) PolicySnapshot(_ context.Context) (commands.PolicySnapshot, error) {
	return s.Snapshot, nil
}
