package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/memory"
	"github.com/victorgomez09/fantasy-manager/internal/platform/cache"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedWithListing(listing market.Listing, bids ...market.Bid) memory.Seed {
	seed := memory.DefaultSeed()
	seed.Listings = []market.Listing{listing}
	seed.Bids = bids
	return seed
}

// Alice sells her striker; Bruno bids on it.
func aliceStrikerListing() market.Listing {
	return market.Listing{
		ID:           "lst-001",
		PlayerID:     "pl-fwd-01",
		SellerTeamID: memory.TeamIDAlice,
		Status:       market.ListingStatusOpen,
		CreatedAt:    time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestBidService_PlaceBid_BelowMarketValueRejected(t *testing.T) {
	store := memory.NewStore(seedWithListing(aliceStrikerListing()))
	service := usecase.NewBidService(store, nil, testLogger())

	_, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_499_999,
	})
	if !errors.Is(err, market.ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow, got %v", err)
	}
}

func TestBidService_PlaceBid_ExactMarketValueAccepted(t *testing.T) {
	store := memory.NewStore(seedWithListing(aliceStrikerListing()))
	service := usecase.NewBidService(store, nil, testLogger())

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	service.SetNowForTest(func() time.Time { return now })

	view, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	})
	if err != nil {
		t.Fatalf("place bid failed: %v", err)
	}
	if view.HighestAmount != 14_500_000 {
		t.Fatalf("expected highest 14500000, got %d", view.HighestAmount)
	}
	if view.BidCount != 1 {
		t.Fatalf("expected 1 bid, got %d", view.BidCount)
	}
	if !view.PlacedAt.Equal(now) {
		t.Fatalf("expected placed_at %v, got %v", now, view.PlacedAt)
	}
}

func TestBidService_PlaceBid_MatchingHighestRejected(t *testing.T) {
	rival := market.Bid{
		ListingID:    "lst-001",
		BidderUserID: "user-carla",
		Amount:       15_000_000,
		PlacedAt:     time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
	}
	seed := seedWithListing(aliceStrikerListing(), rival)
	seed.Accounts = append(seed.Accounts, budget.Account{UserID: "user-carla", Balance: budget.InitialBalance})
	store := memory.NewStore(seed)
	service := usecase.NewBidService(store, nil, testLogger())

	// Equal amount does not take the lead; only a strict raise does.
	_, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       15_000_000,
	})
	if !errors.Is(err, market.ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow on tie, got %v", err)
	}

	view, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       15_000_001,
	})
	if err != nil {
		t.Fatalf("strict raise failed: %v", err)
	}
	if view.HighestAmount != 15_000_001 {
		t.Fatalf("expected highest 15000001, got %d", view.HighestAmount)
	}
	if view.BidCount != 2 {
		t.Fatalf("expected 2 bids, got %d", view.BidCount)
	}
}

func TestBidService_PlaceBid_ReplacesOwnBid(t *testing.T) {
	store := memory.NewStore(seedWithListing(aliceStrikerListing()))
	service := usecase.NewBidService(store, nil, testLogger())

	first, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	})
	if err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	if first.PreviousAmount != 0 {
		t.Fatalf("first bid has no previous amount, got %d", first.PreviousAmount)
	}

	view, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       16_000_000,
	})
	if err != nil {
		t.Fatalf("raise failed: %v", err)
	}
	if view.BidCount != 1 {
		t.Fatalf("re-bid must replace, not add: got %d bids", view.BidCount)
	}
	if view.HighestAmount != 16_000_000 {
		t.Fatalf("expected highest 16000000, got %d", view.HighestAmount)
	}
	if view.PreviousAmount != 14_500_000 {
		t.Fatalf("expected previous amount 14500000, got %d", view.PreviousAmount)
	}
}

func TestBidService_PlaceBid_InsufficientFunds(t *testing.T) {
	listing := aliceStrikerListing()
	seed := seedWithListing(listing)
	for i, acc := range seed.Accounts {
		if acc.UserID == memory.UserIDBruno {
			seed.Accounts[i].Balance = 10_000_000
		}
	}
	store := memory.NewStore(seed)
	service := usecase.NewBidService(store, nil, testLogger())

	_, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	})
	if !errors.Is(err, budget.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestBidService_PlaceBid_SelfBidRejected(t *testing.T) {
	store := memory.NewStore(seedWithListing(aliceStrikerListing()))
	service := usecase.NewBidService(store, nil, testLogger())

	_, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDAlice,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	})
	if !errors.Is(err, market.ErrSelfBid) {
		t.Fatalf("expected ErrSelfBid, got %v", err)
	}
}

func TestBidService_PlaceBid_ClosedListingRejected(t *testing.T) {
	listing := aliceStrikerListing()
	listing.Status = market.ListingStatusCancelled
	store := memory.NewStore(seedWithListing(listing))
	service := usecase.NewBidService(store, nil, testLogger())

	_, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	})
	if !errors.Is(err, market.ErrListingClosed) {
		t.Fatalf("expected ErrListingClosed, got %v", err)
	}
}

// readTrackingUoW counts which listing read each transaction uses.
type readTrackingUoW struct {
	inner       usecase.UnitOfWork
	plainReads  int
	lockedReads int
}

func (u *readTrackingUoW) Do(ctx context.Context, fn func(context.Context, usecase.Repos) error) error {
	return u.inner.Do(ctx, func(ctx context.Context, r usecase.Repos) error {
		r.Market = &readTrackingMarketRepo{Repository: r.Market, uow: u}
		return fn(ctx, r)
	})
}

type readTrackingMarketRepo struct {
	market.Repository
	uow *readTrackingUoW
}

func (m *readTrackingMarketRepo) GetListing(ctx context.Context, listingID string) (market.Listing, bool, error) {
	m.uow.plainReads++
	return m.Repository.GetListing(ctx, listingID)
}

func (m *readTrackingMarketRepo) GetListingForUpdate(ctx context.Context, listingID string) (market.Listing, bool, error) {
	m.uow.lockedReads++
	return m.Repository.GetListingForUpdate(ctx, listingID)
}

// A bid transaction must take the same row lock resolution takes, so the
// two can never interleave on one listing.
func TestBidService_PlaceBid_LocksListingRow(t *testing.T) {
	store := memory.NewStore(seedWithListing(aliceStrikerListing()))
	uow := &readTrackingUoW{inner: store}
	service := usecase.NewBidService(uow, nil, testLogger())

	if _, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	}); err != nil {
		t.Fatalf("place bid failed: %v", err)
	}

	if uow.lockedReads != 1 {
		t.Fatalf("expected 1 locking listing read, got %d", uow.lockedReads)
	}
	if uow.plainReads != 0 {
		t.Fatalf("expected no unlocked listing reads, got %d", uow.plainReads)
	}
}

func TestBidService_PlaceBid_InvalidatesMarketView(t *testing.T) {
	store := memory.NewStore(seedWithListing(aliceStrikerListing()))
	view := cache.NewStore(time.Minute)
	marketService := usecase.NewMarketService(store, &seqIDGenerator{prefix: "lst"}, view, testLogger())
	service := usecase.NewBidService(store, view, testLogger())

	// Prime the cached board before any bid lands.
	before, err := marketService.GetMarket(t.Context())
	if err != nil {
		t.Fatalf("get market failed: %v", err)
	}
	if len(before) != 1 || before[0].BidCount != 0 {
		t.Fatalf("unexpected initial board: %+v", before)
	}

	if _, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-001",
		Amount:       14_500_000,
	}); err != nil {
		t.Fatalf("place bid failed: %v", err)
	}

	after, err := marketService.GetMarket(t.Context())
	if err != nil {
		t.Fatalf("get market after bid failed: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("expected 1 open listing, got %d", len(after))
	}
	if after[0].HighestAmount != 14_500_000 || after[0].BidCount != 1 {
		t.Fatalf("board still serves the pre-bid view: %+v", after[0])
	}
}

func TestBidService_PlaceBid_UnknownListing(t *testing.T) {
	store := memory.NewStore(memory.DefaultSeed())
	service := usecase.NewBidService(store, nil, testLogger())

	_, err := service.PlaceBid(t.Context(), usecase.PlaceBidInput{
		BidderUserID: memory.UserIDBruno,
		ListingID:    "lst-missing",
		Amount:       1_000_000,
	})
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected usecase.ErrNotFound, got %v", err)
	}
}
