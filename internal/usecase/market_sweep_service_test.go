package usecase_test

import (
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
	"testing"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/memory"
)

func TestSweepService_SweepDueListings(t *testing.T) {
	now := time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	dueWithBid := aliceStrikerListing()
	dueWithBid.ClosesAt = &past

	dueNoBid := market.Listing{
		ID:           "lst-002",
		PlayerID:     "pl-mid-01",
		SellerTeamID: memory.TeamIDAlice,
		Status:       market.ListingStatusOpen,
		CreatedAt:    past,
		ClosesAt:     &past,
	}
	notDue := market.Listing{
		ID:           "lst-003",
		PlayerID:     "pl-def-01",
		SellerTeamID: memory.TeamIDAlice,
		Status:       market.ListingStatusOpen,
		CreatedAt:    past,
		ClosesAt:     &future,
	}

	seed := memory.DefaultSeed()
	seed.Listings = []market.Listing{dueWithBid, dueNoBid, notDue}
	seed.Bids = []market.Bid{bidAt("lst-001", memory.UserIDBruno, 16_000_000, past)}
	store := memory.NewStore(seed)

	resolver := newMarketService(store)
	resolver.SetNowForTest(func() time.Time { return now })
	service := usecase.NewSweepService(store, resolver, testLogger())
	service.SetNowForTest(func() time.Time { return now })

	result, err := service.SweepDueListings(t.Context(), usecase.SweepInput{MaxWorkers: 2})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if result.DueCount != 2 {
		t.Fatalf("expected 2 due listings, got %d", result.DueCount)
	}
	if result.SoldCount != 1 || result.CancelCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Listings) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Listings))
	}
	// Rows come back sorted by listing id.
	if result.Listings[0].ListingID != "lst-001" || result.Listings[0].Status != usecase.SweepStatusSoldForTest {
		t.Fatalf("unexpected first row: %+v", result.Listings[0])
	}
	if result.Listings[1].ListingID != "lst-002" || result.Listings[1].Status != usecase.SweepStatusCancelledForTest {
		t.Fatalf("unexpected second row: %+v", result.Listings[1])
	}
}

func TestSweepService_DryRunTouchesNothing(t *testing.T) {
	now := time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	due := aliceStrikerListing()
	due.ClosesAt = &past

	seed := seedWithListing(due, bidAt("lst-001", memory.UserIDBruno, 16_000_000, past))
	store := memory.NewStore(seed)

	service := usecase.NewSweepService(store, newMarketService(store), testLogger())
	service.SetNowForTest(func() time.Time { return now })

	result, err := service.SweepDueListings(t.Context(), usecase.SweepInput{DryRun: true})
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if result.DueCount != 1 || result.SkippedCount != 1 || result.SoldCount != 0 {
		t.Fatalf("unexpected dry run counts: %+v", result)
	}
	if got := balanceOf(t, store, memory.UserIDBruno); got != 35_000_000 {
		t.Fatalf("dry run moved money: %d", got)
	}
}
