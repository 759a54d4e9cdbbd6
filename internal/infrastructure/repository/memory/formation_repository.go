package memory

import (
	"context"
	"sync"

	"github.com/victorgomez09/fantasy-manager/internal/domain/formation"
)

// FormationRepository serves the static formation catalog. It is read
// directly by services, outside the unit of work, so it carries its own
// lock.
type FormationRepository struct {
	mu         sync.RWMutex
	formations []formation.Formation
	index      map[string]formation.Formation
}

func NewFormationRepository(formations []formation.Formation) *FormationRepository {
	index := make(map[string]formation.Formation, len(formations))
	for _, f := range formations {
		index[f.ID] = f
	}

	return &FormationRepository{
		formations: formations,
		index:      index,
	}
}

func (r *FormationRepository) List(_ context.Context) ([]formation.Formation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]formation.Formation, len(r.formations))
	copy(out, r.formations)
	return out, nil
}

func (r *FormationRepository) GetByID(_ context.Context, formationID string) (formation.Formation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.index[formationID]
	return f, ok, nil
}
