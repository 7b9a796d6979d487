package repositories

import (
	"encoding/json"
	"fmt"

	"hungerscrm/internal/models"
	"hungerscrm/internal/store"
)

// DealRepository mirrors the in-memory deal collection into the local
// store. It never mutates the collection on its own; every service
// mutation is followed by a synchronous Save.
type DealRepository struct {
	store *store.Store
}

func NewDealRepository(s *store.Store) *DealRepository {
	return &DealRepository{store: s}
}

// Load returns the stored collection. An empty or missing document
// yields the seed dataset, never an error.
func (r *DealRepository) Load() ([]models.Deal, error) {
	raw, ok, err := r.store.Get(store.KeyDeals)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return models.SeedDeals(), nil
	}
	var deals []models.Deal
	if err := json.Unmarshal([]byte(raw), &deals); err != nil {
		return nil, fmt.Errorf("decode deal collection: %w", err)
	}
	return deals, nil
}

// Save persists the whole collection. Full replacement, no diffing.
func (r *DealRepository) Save(deals []models.Deal) error {
	if deals == nil {
		deals = []models.Deal{}
	}
	raw, err := json.Marshal(deals)
	if err != nil {
		return fmt.Errorf("encode deal collection: %w", err)
	}
	return r.store.Put(store.KeyDeals, string(raw))
}
