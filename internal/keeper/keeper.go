// Package keeper runs the periodic vault maintenance: settling the unstake
// queue, harvesting the surplus and exporting the pool gauges.
package keeper

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/observability/metrics"
	"github.com/babylonchain/staking-vault-service/internal/observability/tracing"
	"github.com/babylonchain/staking-vault-service/internal/services"
	"github.com/babylonchain/staking-vault-service/internal/types"
)

const (
	drainJob      = "drain"
	harvestJob    = "harvest"
	poolGaugesJob = "pool_gauges"
)

// Operations is the part of the service layer driven by the keeper.
type Operations interface {
	Drain(ctx context.Context) (*services.DrainPublic, *types.Error)
	Harvest(ctx context.Context) (*services.HarvestPublic, *types.Error)
	RefreshPoolMetrics(ctx context.Context) error
}

type Keeper struct {
	cron *cron.Cron
	ops  Operations
}

// New schedules the keeper jobs. Drain and harvest are only scheduled when
// the keeper is enabled, the pool gauges whenever an interval is set.
func New(cfg *config.Config, ops Operations) (*Keeper, error) {
	k := &Keeper{
		// A job still running when its next tick fires is skipped.
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ops:  ops,
	}

	if cfg.Keeper.Enabled {
		if _, err := k.cron.AddFunc(cfg.Keeper.DrainSchedule, k.runDrain); err != nil {
			return nil, fmt.Errorf("failed to schedule drain: %w", err)
		}
		if _, err := k.cron.AddFunc(cfg.Keeper.HarvestSchedule, k.runHarvest); err != nil {
			return nil, fmt.Errorf("failed to schedule harvest: %w", err)
		}
	}
	if cfg.Metrics.PoolGaugeInterval > 0 {
		spec := fmt.Sprintf("@every %ds", cfg.Metrics.PoolGaugeInterval)
		if _, err := k.cron.AddFunc(spec, k.refreshPoolGauges); err != nil {
			return nil, fmt.Errorf("failed to schedule pool gauges: %w", err)
		}
	}
	return k, nil
}

// Start runs the scheduled jobs until ctx is done.
func (k *Keeper) Start(ctx context.Context) {
	log.Info().Int("jobs", len(k.cron.Entries())).Msg("Starting vault keeper")
	k.cron.Start()

	go func() {
		<-ctx.Done()
		log.Info().Msg("Stopping vault keeper")
		<-k.cron.Stop().Done()
	}()
}

func jobContext(job string) context.Context {
	logger := log.With().Str("job", job).Logger()
	ctx := tracing.AttachTracingIntoContext(context.Background())
	return logger.WithContext(ctx)
}

func (k *Keeper) runDrain() {
	ctx := jobContext(drainJob)
	result, err := k.ops.Drain(ctx)
	if err != nil {
		metrics.RecordKeeperJobRun(drainJob, metrics.Error)
		log.Ctx(ctx).Error().Err(err).Str("error_code", err.ErrorCode.String()).Msg("scheduled drain failed")
		return
	}
	metrics.RecordKeeperJobRun(drainJob, metrics.Success)
	log.Ctx(ctx).Debug().Uint64("settled", result.Settled).Msg("scheduled drain completed")
}

func (k *Keeper) runHarvest() {
	ctx := jobContext(harvestJob)
	result, err := k.ops.Harvest(ctx)
	if err != nil {
		metrics.RecordKeeperJobRun(harvestJob, metrics.Error)
		log.Ctx(ctx).Error().Err(err).Str("error_code", err.ErrorCode.String()).Msg("scheduled harvest failed")
		return
	}
	metrics.RecordKeeperJobRun(harvestJob, metrics.Success)
	log.Ctx(ctx).Debug().Str("harvested_prize_pool", result.HarvestedPrizePool).
		Bool("updated", result.Updated).Msg("scheduled harvest completed")
}

func (k *Keeper) refreshPoolGauges() {
	ctx := jobContext(poolGaugesJob)
	if err := k.ops.RefreshPoolMetrics(ctx); err != nil {
		metrics.RecordKeeperJobRun(poolGaugesJob, metrics.Error)
		log.Ctx(ctx).Warn().Err(err).Msg("failed to refresh pool gauges")
		return
	}
	metrics.RecordKeeperJobRun(poolGaugesJob, metrics.Success)
}
