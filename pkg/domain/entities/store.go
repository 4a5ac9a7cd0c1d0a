package entities

import "fmt"

// StoreID represents a unique store identifier
type StoreID string

// Store represents a point-of-sale location
type Store struct {
	ID          StoreID
	DisplayName string
}

// NewStore creates a validated Store
func NewStore(id StoreID, displayName string) (*Store, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("store id cannot be empty")
	}
	if displayName == "" {
		displayName = string(id)
	}
	return &Store{
		ID:          id,
		DisplayName: displayName,
	}, nil
}
