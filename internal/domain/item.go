package domain

import "time"

// Rarity is an ordinal tier, 0 being the most common
type Rarity int

// MaxRarity is the highest tier the store can hold. A catalog may define
// fewer tiers.
const MaxRarity Rarity = 7

// Valid reports whether r is within the storable range
func (r Rarity) Valid() bool {
	return r >= 0 && r <= MaxRarity
}

// Item is an owned phone. Price is the face value frozen at acquisition.
type Item struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	Price      int64     `json:"price"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// CatalogRef identifies a catalog entry for purchase
type CatalogRef struct {
	Rarity Rarity `json:"rarity"`
	Name   string `json:"name"`
}

// NewItem describes an item about to be inserted for a user
type NewItem struct {
	UserID string
	Name   string
	Rarity Rarity
	Price  int64
}
