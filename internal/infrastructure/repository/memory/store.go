package memory

import (
	"context"
	"sync"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/domain/squad"
	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

// Store keeps all market state in process. Do serializes transactions
// with one mutex and runs each one against a copy of the state, so a
// failing transaction leaves nothing behind, same as a database
// rollback.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	listings map[string]market.Listing
	bids     map[string]map[string]market.Bid // listing -> bidder -> bid
	accounts map[string]budget.Account
	players  map[string]player.Player
	teams    map[string]team.Team
	squads   map[string]squad.Squad
}

// Seed is the initial dataset for a Store.
type Seed struct {
	Players  []player.Player
	Teams    []team.Team
	Accounts []budget.Account
	Listings []market.Listing
	Bids     []market.Bid
}

func NewStore(seed Seed) *Store {
	st := &state{
		listings: make(map[string]market.Listing, len(seed.Listings)),
		bids:     make(map[string]map[string]market.Bid),
		accounts: make(map[string]budget.Account, len(seed.Accounts)),
		players:  make(map[string]player.Player, len(seed.Players)),
		teams:    make(map[string]team.Team, len(seed.Teams)),
		squads:   make(map[string]squad.Squad),
	}

	for _, p := range seed.Players {
		st.players[p.ID] = p
	}
	for _, t := range seed.Teams {
		st.teams[t.ID] = t
	}
	for _, a := range seed.Accounts {
		st.accounts[a.UserID] = a
	}
	for _, l := range seed.Listings {
		st.listings[l.ID] = l
	}
	for _, b := range seed.Bids {
		if st.bids[b.ListingID] == nil {
			st.bids[b.ListingID] = make(map[string]market.Bid)
		}
		st.bids[b.ListingID][b.BidderUserID] = b
	}

	return &Store{st: st}
}

// Do implements usecase.UnitOfWork. The mutex makes transactions fully
// serial, so GetListingForUpdate needs no extra locking here.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, r usecase.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	repos := usecase.Repos{
		Market:  &MarketRepository{st: next},
		Budgets: &BudgetRepository{st: next},
		Players: &PlayerRepository{st: next},
		Teams:   &TeamRepository{st: next},
		Squads:  &SquadRepository{st: next},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	s.st = next
	return nil
}

func (st *state) clone() *state {
	next := &state{
		listings: make(map[string]market.Listing, len(st.listings)),
		bids:     make(map[string]map[string]market.Bid, len(st.bids)),
		accounts: make(map[string]budget.Account, len(st.accounts)),
		players:  make(map[string]player.Player, len(st.players)),
		teams:    make(map[string]team.Team, len(st.teams)),
		squads:   make(map[string]squad.Squad, len(st.squads)),
	}

	for id, l := range st.listings {
		next.listings[id] = l
	}
	for listingID, byBidder := range st.bids {
		rows := make(map[string]market.Bid, len(byBidder))
		for bidder, b := range byBidder {
			rows[bidder] = b
		}
		next.bids[listingID] = rows
	}
	for id, a := range st.accounts {
		next.accounts[id] = a
	}
	for id, p := range st.players {
		if len(p.AlternativePositions) > 0 {
			alts := make([]player.Position, len(p.AlternativePositions))
			copy(alts, p.AlternativePositions)
			p.AlternativePositions = alts
		}
		next.players[id] = p
	}
	for id, t := range st.teams {
		next.teams[id] = t
	}
	for id, sq := range st.squads {
		assignments := make(map[string]string, len(sq.Assignments))
		for slotID, playerID := range sq.Assignments {
			assignments[slotID] = playerID
		}
		sq.Assignments = assignments
		next.squads[id] = sq
	}

	return next
}
