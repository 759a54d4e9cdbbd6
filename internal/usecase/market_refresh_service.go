package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	idgen "github.com/victorgomez09/fantasy-manager/internal/platform/id"
)

type RefreshInput struct {
	// BatchSize caps how many free agents enter the market per run.
	BatchSize  int
	ListingTTL time.Duration
	MaxWorkers int
}

type RefreshResult struct {
	FreeAgentCount int      `json:"free_agent_count"`
	ListedCount    int      `json:"listed_count"`
	SkippedCount   int      `json:"skipped_count"`
	ListingIDs     []string `json:"listing_ids"`
}

const (
	defaultRefreshBatchSize  = 10
	defaultRefreshListingTTL = 24 * time.Hour
	maxRefreshWorkers        = 4
)

// RefreshService rotates free agents onto the open market. Listings it
// creates carry no seller team, so a winning bid pays the league rather
// than another manager.
type RefreshService struct {
	uow    UnitOfWork
	idGen  idgen.Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewRefreshService(uow UnitOfWork, idGen idgen.Generator, logger *slog.Logger) *RefreshService {
	if logger == nil {
		logger = slog.Default()
	}

	return &RefreshService{
		uow:    uow,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RefreshService) RefreshMarket(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshMarket")
	defer span.End()

	if input.BatchSize <= 0 {
		input.BatchSize = defaultRefreshBatchSize
	}
	if input.ListingTTL <= 0 {
		input.ListingTTL = defaultRefreshListingTTL
	}
	workers := input.MaxWorkers
	if workers <= 0 || workers > maxRefreshWorkers {
		workers = maxRefreshWorkers
	}

	var freeAgents []player.Player
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		var err error
		freeAgents, err = r.Players.ListFreeAgents(ctx)
		return err
	})
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list free agents: %w", err)
	}

	result := RefreshResult{FreeAgentCount: len(freeAgents)}
	if len(freeAgents) == 0 {
		return result, nil
	}

	// Cheapest players rotate in first so every squad can afford at
	// least part of the batch.
	sort.SliceStable(freeAgents, func(i, j int) bool {
		return freeAgents[i].MarketValue < freeAgents[j].MarketValue
	})
	if len(freeAgents) > input.BatchSize {
		freeAgents = freeAgents[:input.BatchSize]
	}

	closesAt := s.now().UTC().Add(input.ListingTTL)

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(workers).WithErrors()
	for _, agent := range freeAgents {
		agent := agent
		p.Go(func() error {
			listingID, err := s.listFreeAgent(ctx, agent, closesAt)
			if errors.Is(err, market.ErrDuplicateListing) {
				mu.Lock()
				result.SkippedCount++
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			result.ListedCount++
			result.ListingIDs = append(result.ListingIDs, listingID)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return RefreshResult{}, err
	}

	sort.Strings(result.ListingIDs)

	s.logger.InfoContext(ctx, "market refreshed",
		"free_agents", result.FreeAgentCount,
		"listed", result.ListedCount,
		"skipped", result.SkippedCount,
	)

	return result, nil
}

func (s *RefreshService) listFreeAgent(ctx context.Context, agent player.Player, closesAt time.Time) (string, error) {
	listingID, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate listing id: %w", err)
	}

	err = s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		if _, exists, err := r.Market.GetOpenListingByPlayer(ctx, agent.ID); err != nil {
			return fmt.Errorf("check open listing player=%s: %w", agent.ID, err)
		} else if exists {
			return fmt.Errorf("%w: player=%s", market.ErrDuplicateListing, agent.ID)
		}

		listing := market.Listing{
			ID:        listingID,
			PlayerID:  agent.ID,
			Status:    market.ListingStatusOpen,
			CreatedAt: s.now().UTC(),
			ClosesAt:  &closesAt,
		}
		if err := listing.Validate(); err != nil {
			return fmt.Errorf("validate listing player=%s: %w", agent.ID, err)
		}

		return r.Market.CreateListing(ctx, listing)
	})
	if err != nil {
		return "", err
	}

	return listingID, nil
}
