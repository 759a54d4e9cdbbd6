package usecase_test

import (
	"context"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
	"testing"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/memory"
)

func TestRefreshService_ListsFreeAgents(t *testing.T) {
	store := memory.NewStore(memory.DefaultSeed())
	service := usecase.NewRefreshService(store, &seqIDGenerator{prefix: "lst"}, testLogger())

	now := time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC)
	service.SetNowForTest(func() time.Time { return now })

	result, err := service.RefreshMarket(t.Context(), usecase.RefreshInput{ListingTTL: 24 * time.Hour})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	// The default seed carries four free agents.
	if result.FreeAgentCount != 4 || result.ListedCount != 4 || result.SkippedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	err = store.Do(t.Context(), func(ctx context.Context, r usecase.Repos) error {
		open, err := r.Market.ListOpenListings(ctx)
		if err != nil {
			return err
		}
		if len(open) != 4 {
			t.Fatalf("expected 4 open listings, got %d", len(open))
		}
		for _, l := range open {
			if l.SellerTeamID != "" {
				t.Fatalf("free agent listing must have no seller team: %+v", l)
			}
			if l.ClosesAt == nil || !l.ClosesAt.Equal(now.Add(24*time.Hour)) {
				t.Fatalf("unexpected closes_at: %+v", l.ClosesAt)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("inspect listings: %v", err)
	}
}

func TestRefreshService_SkipsAlreadyListedAndHonorsBatchSize(t *testing.T) {
	now := time.Date(2026, 6, 1, 6, 0, 0, 0, time.UTC)
	seed := memory.DefaultSeed()
	seed.Listings = []market.Listing{{
		ID:        "lst-existing",
		PlayerID:  "pl-free-01", // cheapest free agent, first in rotation
		Status:    market.ListingStatusOpen,
		CreatedAt: now.Add(-time.Hour),
	}}
	store := memory.NewStore(seed)
	service := usecase.NewRefreshService(store, &seqIDGenerator{prefix: "lst"}, testLogger())
	service.SetNowForTest(func() time.Time { return now })

	result, err := service.RefreshMarket(t.Context(), usecase.RefreshInput{BatchSize: 2})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if result.SkippedCount != 1 {
		t.Fatalf("expected 1 skipped, got %d", result.SkippedCount)
	}
	if result.ListedCount != 1 {
		t.Fatalf("batch of 2 with 1 duplicate must list 1, got %d", result.ListedCount)
	}
}
