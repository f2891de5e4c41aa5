package repository

import (
	"context"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

// ItemReader holds the lock-free item reads
type ItemReader interface {
	// ListItems returns the user's items. Without a rarity they are ordered
	// by rarity DESC, price DESC, id ASC; with one by price DESC, id ASC.
	ListItems(ctx context.Context, userID string, rarity *domain.Rarity) ([]domain.Item, error)
	// CollectionValue sums the prices of the user's items
	CollectionValue(ctx context.Context, userID string) (int64, error)
}

// ItemTx holds the item operations available inside a transaction
type ItemTx interface {
	// GetItemForUpdate reads and locks an item row. A missing row is domain.ErrItemNotFound.
	GetItemForUpdate(ctx context.Context, itemID int64) (*domain.Item, error)
	InsertItem(ctx context.Context, item domain.NewItem, at time.Time) (*domain.Item, error)
	// DeleteItem removes an item. A missing row is domain.ErrItemNotFound.
	DeleteItem(ctx context.Context, itemID int64) error
	// DeleteItemsByRarity removes and returns every item of rarity owned by userID
	DeleteItemsByRarity(ctx context.Context, userID string, rarity domain.Rarity) ([]domain.Item, error)
}
