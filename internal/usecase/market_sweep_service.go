package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
)

type SweepInput struct {
	MaxWorkers int
	// DryRun reports due listings without resolving them.
	DryRun bool
}

type SweepResult struct {
	DueCount     int               `json:"due_count"`
	SoldCount    int               `json:"sold_count"`
	CancelCount  int               `json:"cancel_count"`
	SkippedCount int               `json:"skipped_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Listings     []SweepTaskResult `json:"listings"`
}

type SweepTaskResult struct {
	ListingID  string `json:"listing_id"`
	PlayerID   string `json:"player_id"`
	Status     string `json:"status"`
	Amount     int64  `json:"amount,omitempty"`
	WinnerID   string `json:"winner_user_id,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	sweepStatusSold      = "sold"
	sweepStatusCancelled = "cancelled"
	sweepStatusSkipped   = "skipped"
	sweepStatusFailed    = "failed"
)

// listingResolver settles one listing; MarketService satisfies it.
type listingResolver interface {
	ResolveListing(ctx context.Context, listingID string) (Resolution, error)
}

// SweepService closes every listing whose deadline has passed. It runs
// from an internal job route on a schedule, so a listing resolved by a
// racing sweep is counted as skipped, not failed.
type SweepService struct {
	uow      UnitOfWork
	resolver listingResolver
	logger   *slog.Logger
	now      func() time.Time
}

func NewSweepService(uow UnitOfWork, resolver listingResolver, logger *slog.Logger) *SweepService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SweepService{
		uow:      uow,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *SweepService) SweepDueListings(ctx context.Context, input SweepInput) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.SweepDueListings")
	defer span.End()

	if s.resolver == nil {
		return SweepResult{}, fmt.Errorf("%w: sweep is not fully configured", ErrDependencyUnavailable)
	}

	var due []market.Listing
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		var err error
		due, err = r.Market.ListDueListings(ctx, s.now().UTC())
		return err
	})
	if err != nil {
		return SweepResult{}, fmt.Errorf("list due listings: %w", err)
	}

	workerCount := normalizeSweepWorkerCount(input.MaxWorkers, len(due))
	result := SweepResult{
		DueCount:    len(due),
		WorkerCount: workerCount,
		Listings:    make([]SweepTaskResult, 0, len(due)),
	}
	if len(due) == 0 || input.DryRun {
		for _, listing := range due {
			result.Listings = append(result.Listings, SweepTaskResult{
				ListingID: listing.ID,
				PlayerID:  listing.PlayerID,
				Status:    sweepStatusSkipped,
				Message:   "dry run",
			})
		}
		result.SkippedCount = len(due)
		return result, nil
	}

	rows := make(chan SweepTaskResult, len(due))

	var soldCount atomic.Int32
	var cancelCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, listing := range due {
		listing := listing
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SweepTaskResult{
				ListingID: listing.ID,
				PlayerID:  listing.PlayerID,
			}

			resolution, err := s.resolver.ResolveListing(ctx, listing.ID)
			switch {
			case err == nil && resolution.Outcome == OutcomeSold:
				row.Status = sweepStatusSold
				row.Amount = resolution.Amount
				row.WinnerID = resolution.WinnerUserID
				soldCount.Add(1)
			case err == nil:
				row.Status = sweepStatusCancelled
				cancelCount.Add(1)
			case errors.Is(err, market.ErrAlreadyResolved), errors.Is(err, market.ErrListingClosed), errors.Is(err, ErrNotFound):
				row.Status = sweepStatusSkipped
				row.Message = err.Error()
				skippedCount.Add(1)
			default:
				row.Status = sweepStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return SweepResult{}, fmt.Errorf("submit listing to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Listings = append(result.Listings, row)
	}
	sort.SliceStable(result.Listings, func(i, j int) bool {
		return result.Listings[i].ListingID < result.Listings[j].ListingID
	})

	result.SoldCount = int(soldCount.Load())
	result.CancelCount = int(cancelCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "market sweep finished",
		"due", result.DueCount,
		"sold", result.SoldCount,
		"cancelled", result.CancelCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)

	return result, nil
}

func normalizeSweepWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
