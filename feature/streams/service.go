package streams

import (
	"context"
	"fmt"
	"time"

	"stream-manager/core/reconcile"
	"stream-manager/feature/streams/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Store is the storage surface a fixup run needs: the engine's row
// access plus schema verification.
type Store interface {
	reconcile.Store
	VerifySchema(ctx context.Context, table string) error
}

// Service runs stream fixups.
type Service struct {
	scope  Scope
	store  Store
	logger *zap.Logger
	opts   reconcile.Options
	group  singleflight.Group
}

// NewService creates a new streams service. opts provide the table and
// batch size; the ignore set and dry-run flag come per call.
func NewService(db *gorm.DB, logger *zap.Logger, opts reconcile.Options) *Service {
	return &Service{
		scope:  NewScope(db),
		store:  NewStore(db),
		logger: logger,
		opts:   opts,
	}
}

// FixupParams select what one fixup run covers.
type FixupParams struct {
	// UserID restricts the run to one user. Zero means every user
	// owning stream rows.
	UserID uint64
	// ProviderID narrows each target to one provider's rows.
	ProviderID uint64
	// Ignore holds fields excluded from the run.
	Ignore reconcile.FieldSet
	// DryRun counts updates without applying them.
	DryRun bool
}

// Fixup reconciles every target the params resolve to. A failing
// target is logged and counted but does not stop the remaining ones.
func (s *Service) Fixup(ctx context.Context, params FixupParams) (*models.RunReport, error) {
	start := time.Now()

	table := s.opts.Table
	if table == "" {
		table = reconcile.DefaultTable
	}
	if err := s.store.VerifySchema(ctx, table); err != nil {
		return nil, err
	}

	targets, err := s.scope.Resolve(ctx, params.UserID, params.ProviderID)
	if err != nil {
		return nil, err
	}

	opts := s.opts
	opts.Ignore = params.Ignore
	opts.DryRun = params.DryRun
	engine := reconcile.New(s.store, s.logger, opts)

	report := &models.RunReport{
		RunID:   uuid.NewString(),
		Targets: targets,
	}

	for _, target := range targets {
		sum, err := engine.ReconcileAll(ctx, target.UserID, target.ProviderID)
		if err != nil {
			report.Failed++
			s.logger.Error("Stream fixup failed for target",
				zap.String("run_id", report.RunID),
				zap.Uint64("user_id", target.UserID),
				zap.Uint64("provider_id", target.ProviderID),
				zap.Error(err))
			continue
		}
		report.Names += sum.Names
		report.Channels += sum.Channels
		report.Logos += sum.Logos
		report.TvgIDs += sum.TvgIDs
		report.Updated += sum.Total()
	}

	report.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	report.ExecutionTime = time.Since(start).Round(time.Millisecond).String()
	return report, nil
}

// FixupSerialized collapses concurrent fixups of the same user/provider
// pair into a single run sharing its report.
func (s *Service) FixupSerialized(ctx context.Context, params FixupParams) (*models.RunReport, error) {
	key := fmt.Sprintf("%d|%d", params.UserID, params.ProviderID)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.Fixup(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.RunReport), nil
}
