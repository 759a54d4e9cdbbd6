package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/domain/user"
	"github.com/victorgomez09/fantasy-manager/internal/platform/cache"
	idgen "github.com/victorgomez09/fantasy-manager/internal/platform/id"
)

const marketViewCacheKey = "market:open-listings"

// CreateListingInput puts one of the seller's players up for transfer.
type CreateListingInput struct {
	SellerUserID string
	PlayerID     string
	ClosesAt     *time.Time
}

// ResolutionOutcome says how a listing left the open state.
type ResolutionOutcome string

const (
	OutcomeSold      ResolutionOutcome = "sold"
	OutcomeCancelled ResolutionOutcome = "cancelled"
)

// Resolution reports the settlement of one listing.
type Resolution struct {
	ListingID     string
	PlayerID      string
	Outcome       ResolutionOutcome
	WinnerUserID  string
	WinnerTeamID  string
	SellerUserID  string
	Amount        int64
	Disqualified  []string
	ClearedSlotID string
}

// ListingView is one row of the open-market read model.
type ListingView struct {
	ListingID     string
	PlayerID      string
	PlayerName    string
	Position      string
	MarketValue   int64
	SellerTeamID  string
	HighestAmount int64
	BidCount      int
	ClosesAt      *time.Time
}

// MarketService owns the listing lifecycle: creation, cancellation and
// resolution. Resolution is the only place budgets move.
type MarketService struct {
	uow    UnitOfWork
	idGen  idgen.Generator
	view   *cache.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewMarketService(uow UnitOfWork, idGen idgen.Generator, view *cache.Store, logger *slog.Logger) *MarketService {
	if logger == nil {
		logger = slog.Default()
	}

	return &MarketService{
		uow:    uow,
		idGen:  idGen,
		view:   view,
		logger: logger,
		now:    time.Now,
	}
}

func (s *MarketService) CreateListing(ctx context.Context, input CreateListingInput) (market.Listing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.CreateListing")
	defer span.End()

	input.SellerUserID = strings.TrimSpace(input.SellerUserID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)

	if input.SellerUserID == "" {
		return market.Listing{}, fmt.Errorf("%w: seller user id is required", ErrInvalidInput)
	}
	if input.PlayerID == "" {
		return market.Listing{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.ClosesAt != nil && !input.ClosesAt.After(s.now()) {
		return market.Listing{}, fmt.Errorf("%w: closes_at must be in the future", ErrInvalidInput)
	}

	var created market.Listing
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		sellerTeam, ok, err := r.Teams.GetByOwner(ctx, input.SellerUserID)
		if err != nil {
			return fmt.Errorf("get seller team: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: team for user=%s", ErrNotFound, input.SellerUserID)
		}

		p, ok, err := r.Players.GetByID(ctx, input.PlayerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
		}
		if p.OwnerTeamID != sellerTeam.ID {
			return fmt.Errorf("%w: player=%s is not owned by team=%s", ErrUnauthorized, p.ID, sellerTeam.ID)
		}

		if _, exists, err := r.Market.GetOpenListingByPlayer(ctx, p.ID); err != nil {
			return fmt.Errorf("check open listing: %w", err)
		} else if exists {
			return fmt.Errorf("%w: player=%s", market.ErrDuplicateListing, p.ID)
		}

		listingID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate listing id: %w", err)
		}

		created = market.Listing{
			ID:           listingID,
			PlayerID:     p.ID,
			SellerTeamID: sellerTeam.ID,
			Status:       market.ListingStatusOpen,
			CreatedAt:    s.now().UTC(),
			ClosesAt:     input.ClosesAt,
		}
		if err := created.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		return r.Market.CreateListing(ctx, created)
	})
	if err != nil {
		return market.Listing{}, err
	}

	s.invalidateView(ctx)
	s.logger.InfoContext(ctx, "listing created",
		"listing_id", created.ID,
		"player_id", created.PlayerID,
		"seller_team_id", created.SellerTeamID,
	)

	return created, nil
}

// ResolveListing settles a listing inside one transaction: winner
// selection with balance re-validation, fund movement, ownership
// transfer, seller slot cleanup and bid deletion are all-or-nothing.
func (s *MarketService) ResolveListing(ctx context.Context, listingID string) (Resolution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.ResolveListing")
	defer span.End()

	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return Resolution{}, fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}

	var result Resolution
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		listing, ok, err := r.Market.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: listing=%s", ErrNotFound, listingID)
		}
		switch listing.Status {
		case market.ListingStatusOpen:
		case market.ListingStatusResolved:
			return fmt.Errorf("%w: listing=%s", market.ErrAlreadyResolved, listing.ID)
		default:
			return fmt.Errorf("%w: listing=%s status=%s", market.ErrListingClosed, listing.ID, listing.Status)
		}
		// A scheduled listing settles at its deadline, not before.
		if listing.ClosesAt != nil && listing.ClosesAt.After(s.now()) {
			return fmt.Errorf("%w: listing=%s closes_at=%s", market.ErrListingNotExpired, listing.ID, listing.ClosesAt.UTC().Format(time.RFC3339))
		}

		bids, err := r.Market.ListBids(ctx, listing.ID)
		if err != nil {
			return fmt.Errorf("list bids: %w", err)
		}

		result = Resolution{ListingID: listing.ID, PlayerID: listing.PlayerID}

		// Balances may have dropped since placement (no escrow), so the
		// winner is re-checked here and disqualified bidders fall away
		// until a funded bid remains or the listing cancels.
		for {
			winner, found := market.HighestBid(bids)
			if !found {
				result.Outcome = OutcomeCancelled
				if err := r.Market.DeleteBids(ctx, listing.ID); err != nil {
					return fmt.Errorf("delete bids: %w", err)
				}
				return r.Market.UpdateListingStatus(ctx, listing.ID, market.ListingStatusCancelled)
			}

			account, ok, err := r.Budgets.GetByUser(ctx, winner.BidderUserID)
			if err != nil {
				return fmt.Errorf("get winner budget: %w", err)
			}
			if !ok || account.Balance < winner.Amount {
				result.Disqualified = append(result.Disqualified, winner.BidderUserID)
				bids = market.WithoutBidder(bids, winner.BidderUserID)
				continue
			}

			return s.settle(ctx, r, listing, winner, account, &result)
		}
	})
	if err != nil {
		return Resolution{}, err
	}

	s.invalidateView(ctx)
	s.logger.InfoContext(ctx, "listing resolved",
		"listing_id", result.ListingID,
		"outcome", string(result.Outcome),
		"winner_user_id", result.WinnerUserID,
		"amount", result.Amount,
		"disqualified", len(result.Disqualified),
	)

	return result, nil
}

// settle moves the money and the player. It runs inside the resolution
// transaction so a failure at any step rolls back every other step.
func (s *MarketService) settle(
	ctx context.Context,
	r Repos,
	listing market.Listing,
	winner market.Bid,
	winnerAccount budget.Account,
	result *Resolution,
) error {
	winnerTeam, ok, err := r.Teams.GetByOwner(ctx, winner.BidderUserID)
	if err != nil {
		return fmt.Errorf("get winner team: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: team for user=%s", ErrNotFound, winner.BidderUserID)
	}

	if err := winnerAccount.Debit(winner.Amount); err != nil {
		return fmt.Errorf("debit winner: %w", err)
	}
	winnerAccount.UpdatedAt = s.now().UTC()
	if err := r.Budgets.Save(ctx, winnerAccount); err != nil {
		return fmt.Errorf("save winner budget: %w", err)
	}

	// Free-agent listings have no seller team: the sale price leaves the
	// league economy instead of crediting anyone.
	if listing.SellerTeamID != "" {
		sellerTeam, ok, err := r.Teams.GetByID(ctx, listing.SellerTeamID)
		if err != nil {
			return fmt.Errorf("get seller team: %w", err)
		}
		if ok {
			sellerAccount, found, err := r.Budgets.GetByUser(ctx, sellerTeam.OwnerUserID)
			if err != nil {
				return fmt.Errorf("get seller budget: %w", err)
			}
			if !found {
				return fmt.Errorf("%w: budget account for user=%s", ErrNotFound, sellerTeam.OwnerUserID)
			}
			if err := sellerAccount.Credit(winner.Amount); err != nil {
				return fmt.Errorf("credit seller: %w", err)
			}
			sellerAccount.UpdatedAt = s.now().UTC()
			if err := r.Budgets.Save(ctx, sellerAccount); err != nil {
				return fmt.Errorf("save seller budget: %w", err)
			}
			result.SellerUserID = sellerTeam.OwnerUserID
		}
	}

	p, ok, err := r.Players.GetByID(ctx, listing.PlayerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player=%s", ErrNotFound, listing.PlayerID)
	}
	p.OwnerTeamID = winnerTeam.ID
	if err := r.Players.Save(ctx, p); err != nil {
		return fmt.Errorf("transfer player ownership: %w", err)
	}

	if listing.SellerTeamID != "" {
		sellerSquad, found, err := r.Squads.GetByTeam(ctx, listing.SellerTeamID)
		if err != nil {
			return fmt.Errorf("get seller squad: %w", err)
		}
		if found {
			if slotID, assigned := sellerSquad.SlotOf(p.ID); assigned {
				result.ClearedSlotID = slotID
			}
		}
		if err := r.Squads.ClearPlayer(ctx, listing.SellerTeamID, p.ID); err != nil {
			return fmt.Errorf("clear seller squad slot: %w", err)
		}
	}

	if err := r.Market.DeleteBids(ctx, listing.ID); err != nil {
		return fmt.Errorf("delete bids: %w", err)
	}
	if err := r.Market.UpdateListingStatus(ctx, listing.ID, market.ListingStatusResolved); err != nil {
		return fmt.Errorf("mark listing resolved: %w", err)
	}

	result.Outcome = OutcomeSold
	result.WinnerUserID = winner.BidderUserID
	result.WinnerTeamID = winnerTeam.ID
	result.Amount = winner.Amount

	return nil
}

func (s *MarketService) invalidateView(ctx context.Context) {
	if s.view != nil {
		s.view.Delete(ctx, marketViewCacheKey)
	}
}

func (s *MarketService) CancelListing(ctx context.Context, principal user.Principal, listingID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.CancelListing")
	defer span.End()

	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return fmt.Errorf("%w: listing id is required", ErrInvalidInput)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		listing, ok, err := r.Market.GetListingForUpdate(ctx, listingID)
		if err != nil {
			return fmt.Errorf("lock listing: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: listing=%s", ErrNotFound, listingID)
		}
		if !listing.IsOpen() {
			if listing.Status == market.ListingStatusResolved {
				return fmt.Errorf("%w: listing=%s", market.ErrAlreadyResolved, listing.ID)
			}
			return fmt.Errorf("%w: listing=%s status=%s", market.ErrListingClosed, listing.ID, listing.Status)
		}

		if !principal.IsAdmin() {
			sellerTeam, ok, err := r.Teams.GetByOwner(ctx, principal.UserID)
			if err != nil {
				return fmt.Errorf("get caller team: %w", err)
			}
			if !ok || sellerTeam.ID != listing.SellerTeamID {
				return fmt.Errorf("%w: only the seller may cancel listing=%s", ErrUnauthorized, listing.ID)
			}
		}

		if err := r.Market.DeleteBids(ctx, listing.ID); err != nil {
			return fmt.Errorf("delete bids: %w", err)
		}

		return r.Market.UpdateListingStatus(ctx, listing.ID, market.ListingStatusCancelled)
	})
	if err != nil {
		return err
	}

	s.invalidateView(ctx)
	s.logger.InfoContext(ctx, "listing cancelled", "listing_id", listingID, "user_id", principal.UserID)

	return nil
}

// GetMarket returns the open-market read model, cached briefly because
// the market page is the hottest read in the product.
func (s *MarketService) GetMarket(ctx context.Context) ([]ListingView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.GetMarket")
	defer span.End()

	if s.view == nil {
		return s.loadMarket(ctx)
	}

	cached, err := s.view.GetOrLoad(ctx, marketViewCacheKey, func(ctx context.Context) (any, error) {
		return s.loadMarket(ctx)
	})
	if err != nil {
		return nil, err
	}

	views, ok := cached.([]ListingView)
	if !ok {
		return s.loadMarket(ctx)
	}

	return views, nil
}

func (s *MarketService) loadMarket(ctx context.Context) ([]ListingView, error) {
	var views []ListingView
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		listings, err := r.Market.ListOpenListings(ctx)
		if err != nil {
			return fmt.Errorf("list open listings: %w", err)
		}

		views = make([]ListingView, 0, len(listings))
		for _, listing := range listings {
			p, ok, err := r.Players.GetByID(ctx, listing.PlayerID)
			if err != nil {
				return fmt.Errorf("get player for listing=%s: %w", listing.ID, err)
			}
			if !ok {
				continue
			}

			bids, err := r.Market.ListBids(ctx, listing.ID)
			if err != nil {
				return fmt.Errorf("list bids for listing=%s: %w", listing.ID, err)
			}
			top, _ := market.HighestBid(bids)

			views = append(views, ListingView{
				ListingID:     listing.ID,
				PlayerID:      p.ID,
				PlayerName:    p.Name,
				Position:      string(p.Position),
				MarketValue:   p.MarketValue,
				SellerTeamID:  listing.SellerTeamID,
				HighestAmount: top.Amount,
				BidCount:      len(bids),
				ClosesAt:      listing.ClosesAt,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}
