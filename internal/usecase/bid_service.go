package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/platform/cache"
)

// PlaceBidInput is the incoming payload for a bid on an open listing.
type PlaceBidInput struct {
	BidderUserID string
	ListingID    string
	Amount       int64
}

// BidView is the externally visible state of a listing's auction after a
// successful bid: the bid row itself plus the updated highest amount.
type BidView struct {
	ListingID      string
	PlayerID       string
	YourAmount     int64
	PreviousAmount int64
	HighestAmount  int64
	BidCount       int
	PlacedAt       time.Time
}

// BidService validates and records bids. Funds are checked but not
// reserved at bid time; the guaranteed check happens at resolution.
type BidService struct {
	uow    UnitOfWork
	view   *cache.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewBidService(uow UnitOfWork, view *cache.Store, logger *slog.Logger) *BidService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BidService{
		uow:    uow,
		view:   view,
		logger: logger,
		now:    time.Now,
	}
}

func (s *BidService) PlaceBid(ctx context.Context, input PlaceBidInput) (BidView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BidService.PlaceBid")
	defer span.End()

	input.BidderUserID = strings.TrimSpace(input.BidderUserID)
	input.ListingID = strings.TrimSpace(input.ListingID)

	if input.BidderUserID == "" {
		return BidView{}, fmt.Errorf("%w: bidder user id is required", ErrInvalidInput)
	}
	if input.ListingID == "" {
		return BidView{}, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return BidView{}, fmt.Errorf("%w: bid amount must be greater than zero", ErrInvalidInput)
	}

	var view BidView
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		// The locking read serializes bid placement against a concurrent
		// resolution of the same listing: a bid can never land on a row the
		// resolver has already settled, and two equal bids cannot both pass
		// the strict-improvement check.
		listing, ok, err := r.Market.GetListingForUpdate(ctx, input.ListingID)
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: listing=%s", ErrNotFound, input.ListingID)
		}
		if !listing.IsOpen() {
			return fmt.Errorf("%w: listing=%s status=%s", market.ErrListingClosed, listing.ID, listing.Status)
		}

		listed, ok, err := r.Players.GetByID(ctx, listing.PlayerID)
		if err != nil {
			return fmt.Errorf("get listed player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, listing.PlayerID)
		}

		if input.Amount < listed.MarketValue {
			return fmt.Errorf("%w: amount=%d market_value=%d", market.ErrBidTooLow, input.Amount, listed.MarketValue)
		}

		bids, err := r.Market.ListBids(ctx, listing.ID)
		if err != nil {
			return fmt.Errorf("list bids: %w", err)
		}
		// A matching amount is rejected: once a rival holds the top, only
		// a strict improvement may replace it.
		if top, exists := market.HighestBid(bids); exists && input.Amount <= top.Amount {
			return fmt.Errorf("%w: amount=%d highest=%d", market.ErrBidTooLow, input.Amount, top.Amount)
		}

		account, ok, err := r.Budgets.GetByUser(ctx, input.BidderUserID)
		if err != nil {
			return fmt.Errorf("get bidder budget: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: budget account for user=%s", ErrNotFound, input.BidderUserID)
		}
		if input.Amount > account.Balance {
			return fmt.Errorf("%w: amount=%d balance=%d", budget.ErrInsufficientFunds, input.Amount, account.Balance)
		}

		bidderTeam, ok, err := r.Teams.GetByOwner(ctx, input.BidderUserID)
		if err != nil {
			return fmt.Errorf("get bidder team: %w", err)
		}
		if ok && listed.OwnerTeamID == bidderTeam.ID {
			return fmt.Errorf("%w: player=%s", market.ErrSelfBid, listed.ID)
		}

		prior, hadPrior, err := r.Market.GetBid(ctx, listing.ID, input.BidderUserID)
		if err != nil {
			return fmt.Errorf("get own bid: %w", err)
		}

		bid := market.Bid{
			ListingID:    listing.ID,
			BidderUserID: input.BidderUserID,
			Amount:       input.Amount,
			PlacedAt:     s.now().UTC(),
		}
		if err := bid.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := r.Market.UpsertBid(ctx, bid); err != nil {
			return fmt.Errorf("upsert bid: %w", err)
		}

		refreshed, err := r.Market.ListBids(ctx, listing.ID)
		if err != nil {
			return fmt.Errorf("list bids after upsert: %w", err)
		}
		top, _ := market.HighestBid(refreshed)

		view = BidView{
			ListingID:     listing.ID,
			PlayerID:      listing.PlayerID,
			YourAmount:    bid.Amount,
			HighestAmount: top.Amount,
			BidCount:      len(refreshed),
			PlacedAt:      bid.PlacedAt,
		}
		if hadPrior {
			view.PreviousAmount = prior.Amount
		}

		return nil
	})
	if err != nil {
		return BidView{}, err
	}

	// A committed bid changes the board's highest amount and bid count.
	if s.view != nil {
		s.view.Delete(ctx, marketViewCacheKey)
	}

	s.logger.InfoContext(ctx, "bid placed",
		"listing_id", view.ListingID,
		"bidder_user_id", input.BidderUserID,
		"amount", view.YourAmount,
		"highest", view.HighestAmount,
	)

	return view, nil
}
