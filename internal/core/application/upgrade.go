package application

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/pkg/stats"
)

// Workflow brings a wrapper from the previous version to SupportedVersion.
// Upgrade is called only if ShouldPerformUpgrade returns true.
type Workflow struct {
	SupportedVersion     domain.Version
	ShouldPerformUpgrade func(wrapper domain.Wrapper) bool
	Upgrade              func(
		ctx context.Context, wrapper domain.Wrapper,
	) (*domain.Wrapper, error)
}

// UpgradeEngine applies an ordered chain of workflows to bring a wrapper to
// the latest version.
type UpgradeEngine struct {
	workflows []Workflow
}

// NewUpgradeEngine returns an engine for the given workflows. They must be
// sorted by version and cover every version from 2 to the latest one.
func NewUpgradeEngine(workflows ...Workflow) (*UpgradeEngine, error) {
	if len(workflows) <= 0 {
		return nil, ErrInvalidWorkflows
	}
	for i, w := range workflows {
		if w.SupportedVersion != domain.Version2+domain.Version(i) {
			return nil, fmt.Errorf(
				"%w: workflow %d has version %s", ErrInvalidWorkflows, i, w.SupportedVersion,
			)
		}
		if w.ShouldPerformUpgrade == nil || w.Upgrade == nil {
			return nil, fmt.Errorf(
				"%w: workflow for version %s is incomplete", ErrInvalidWorkflows, w.SupportedVersion,
			)
		}
	}
	if last := workflows[len(workflows)-1]; last.SupportedVersion != domain.LatestVersion {
		return nil, fmt.Errorf(
			"%w: last workflow has version %s", ErrInvalidWorkflows, last.SupportedVersion,
		)
	}
	return &UpgradeEngine{workflows}, nil
}

// Workflows returns the chain of the engine
func (e *UpgradeEngine) Workflows() []Workflow {
	return append([]Workflow{}, e.workflows...)
}

// NeedsUpgrade returns whether Run would transform the wrapper
func (e *UpgradeEngine) NeedsUpgrade(wrapper domain.Wrapper) bool {
	if !wrapper.IsLatest() {
		return true
	}
	for _, w := range e.workflows {
		if w.ShouldPerformUpgrade(wrapper) {
			return true
		}
	}
	return false
}

// Run visits in order every workflow with a version greater than the one of
// wrapper, feeding the output of each upgrade to the next one. The returned
// wrapper is at the latest version. Once started, a run is not interrupted
// by the cancellation of ctx.
func (e *UpgradeEngine) Run(
	ctx context.Context, wrapper domain.Wrapper,
) (*domain.Wrapper, error) {
	if !wrapper.Version.IsSupported() {
		return nil, fmt.Errorf("%w: %s", ErrUpgradeFailed, domain.ErrUnsupportedVersion)
	}
	ctx = context.WithoutCancel(ctx)

	logger := log.WithField("guid", wrapper.GUID())
	current := wrapper
	for _, w := range e.workflows {
		if w.SupportedVersion <= current.Version {
			continue
		}
		version := w.SupportedVersion.String()

		if !w.ShouldPerformUpgrade(current) {
			stats.ObserveUpgradeStep(version, stats.ResultSkipped)
			logger.Debugf("upgrade to version %s not needed, skipping", version)
			continue
		}

		next, err := e.runWorkflow(ctx, w, current)
		if err != nil {
			stats.ObserveUpgradeStep(version, stats.ResultFailure)
			logger.WithError(err).Warnf("upgrade to version %s failed", version)
			return nil, err
		}
		stats.ObserveUpgradeStep(version, stats.ResultSuccess)
		logger.Infof("wallet upgraded from version %s to %s", current.Version, version)
		current = *next
	}

	if current.Version != domain.LatestVersion {
		return nil, fmt.Errorf(
			"%w: wallet left at version %s", ErrUpgradeFailed, current.Version,
		)
	}
	return &current, nil
}

func (e *UpgradeEngine) runWorkflow(
	ctx context.Context, w Workflow, wrapper domain.Wrapper,
) (*domain.Wrapper, error) {
	next, err := w.Upgrade(ctx, wrapper)
	if err != nil {
		if errors.Is(err, ErrWalletUpgrade) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrUpgradeFailed, err)
	}
	if next == nil {
		return nil, fmt.Errorf("%w: no wallet returned", ErrUpgradeFailed)
	}
	if next.Version < wrapper.Version {
		return nil, fmt.Errorf(
			"%w: %s", ErrUpgradeFailed, domain.ErrVersionDowngrade,
		)
	}
	if next.Version != w.SupportedVersion {
		return nil, fmt.Errorf(
			"%w: expected version %s, got %s",
			ErrUpgradeFailed, w.SupportedVersion, next.Version,
		)
	}
	if next.GUID() != wrapper.GUID() {
		return nil, fmt.Errorf("%w: wallet guid changed", ErrUpgradeFailed)
	}
	return next, nil
}

// UpgradeService upgrades wallets and syncs the result
type UpgradeService interface {
	NeedsUpgrade(wrapper domain.Wrapper) bool
	// UpgradeAndSync runs the upgrade chain and syncs the upgraded wallet in
	// the same serial slot. Nothing is published if either step fails.
	UpgradeAndSync(
		ctx context.Context, wrapper domain.Wrapper, password string,
	) (*domain.Wrapper, error)
}

type upgradeService struct {
	engine      *UpgradeEngine
	syncService SyncService
}

// NewUpgradeService ...
func NewUpgradeService(
	engine *UpgradeEngine, syncService SyncService,
) UpgradeService {
	return &upgradeService{engine, syncService}
}

func (s *upgradeService) NeedsUpgrade(wrapper domain.Wrapper) bool {
	return s.engine.NeedsUpgrade(wrapper)
}

func (s *upgradeService) UpgradeAndSync(
	ctx context.Context, wrapper domain.Wrapper, password string,
) (*domain.Wrapper, error) {
	if !s.engine.NeedsUpgrade(wrapper) {
		return &wrapper, nil
	}
	return s.syncService.SyncWith(
		ctx, wrapper.GUID(), password,
		func(ctx context.Context) (*domain.Wrapper, error) {
			return s.engine.Run(ctx, wrapper)
		},
	)
}
