package memory

import (
	"fmt"
	"sort"

	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/domain/repositories"
)

// StoreRepository provides an in-memory store metadata repository
type StoreRepository struct {
	stores   []entities.Store
	storeMap map[entities.StoreID]int
}

// NewStoreRepository creates an in-memory store repository
func NewStoreRepository(expectedStores int) *StoreRepository {
	return &StoreRepository{
		stores:   make([]entities.Store, 0, expectedStores),
		storeMap: make(map[entities.StoreID]int, expectedStores),
	}
}

// Verify interface compliance
var _ repositories.StoreRepository = (*StoreRepository)(nil)

// AddStore adds a store to the repository
func (r *StoreRepository) AddStore(store entities.Store) {
	if idx, exists := r.storeMap[store.ID]; exists {
		r.stores[idx] = store
		return
	}
	r.storeMap[store.ID] = len(r.stores)
	r.stores = append(r.stores, store)
}

// GetStore returns the store metadata for an identifier
func (r *StoreRepository) GetStore(id entities.StoreID) (*entities.Store, error) {
	index, exists := r.storeMap[id]
	if !exists {
		return nil, fmt.Errorf("store not found: %s", id)
	}
	return &r.stores[index], nil
}

// GetAllStores returns every store, sorted by identifier
func (r *StoreRepository) GetAllStores() ([]*entities.Store, error) {
	stores := make([]*entities.Store, 0, len(r.stores))
	for i := range r.stores {
		stores = append(stores, &r.stores[i])
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].ID < stores[j].ID })
	return stores, nil
}

// LoadStores loads stores into the repository
func (r *StoreRepository) LoadStores(stores []*entities.Store) error {
	for _, store := range stores {
		r.AddStore(*store)
	}
	return nil
}
