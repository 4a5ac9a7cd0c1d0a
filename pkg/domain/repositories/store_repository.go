package repositories

import "github.com/demandcast/demandcast/pkg/domain/entities"

// StoreRepository provides access to store reference data
type StoreRepository interface {
	// GetStore returns the store metadata for an identifier, or an error when
	// the store is unknown.
	GetStore(id entities.StoreID) (*entities.Store, error)

	// GetAllStores returns every store, sorted by identifier.
	GetAllStores() ([]*entities.Store, error)

	LoadStores(stores []*entities.Store) error
}
