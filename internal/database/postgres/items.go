package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

func scanItem(row pgx.CollectableRow) (domain.Item, error) {
	var (
		it     domain.Item
		rarity int16
	)
	if err := row.Scan(&it.ID, &it.UserID, &it.Name, &rarity, &it.Price, &it.ObtainedAt); err != nil {
		return domain.Item{}, err
	}
	it.Rarity = domain.Rarity(rarity)
	it.ObtainedAt = utc(it.ObtainedAt)
	return it, nil
}

func collectItems(rows pgx.Rows, err error, msg string) ([]domain.Item, error) {
	if err != nil {
		return nil, wrapErr(msg, err)
	}
	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, wrapErr(msg, err)
	}
	return items, nil
}

// ListItems returns the user's items in display order
func (l *Ledger) ListItems(ctx context.Context, userID string, rarity *domain.Rarity) ([]domain.Item, error) {
	if rarity != nil {
		rows, err := l.pool.Query(ctx, sqlListItemsByRarity, userID, int16(*rarity))
		return collectItems(rows, err, ErrMsgFailedToListItems)
	}
	rows, err := l.pool.Query(ctx, sqlListItems, userID)
	return collectItems(rows, err, ErrMsgFailedToListItems)
}

// CollectionValue sums the face values of the user's items
func (l *Ledger) CollectionValue(ctx context.Context, userID string) (int64, error) {
	var total int64
	if err := l.pool.QueryRow(ctx, sqlCollectionValue, userID).Scan(&total); err != nil {
		return 0, wrapErr(ErrMsgFailedToCollectionSize, err)
	}
	return total, nil
}

// GetItemForUpdate reads and locks an item row. A concurrent transaction
// that deleted the row makes this return domain.ErrItemNotFound once it commits.
func (t *LedgerTx) GetItemForUpdate(ctx context.Context, itemID int64) (*domain.Item, error) {
	rows, err := t.tx.Query(ctx, sqlGetItemForUpdate, itemID)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToLockItem, err)
	}
	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrItemNotFound, ErrMsgFailedToLockItem)
	}
	return &it, nil
}

// InsertItem adds an item to a user's collection
func (t *LedgerTx) InsertItem(ctx context.Context, item domain.NewItem, at time.Time) (*domain.Item, error) {
	rows, err := t.tx.Query(ctx, sqlInsertItem, item.UserID, item.Name, int16(item.Rarity), item.Price, at)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToInsertItem, err)
	}
	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToInsertItem, err)
	}
	return &it, nil
}

// DeleteItem removes an item
func (t *LedgerTx) DeleteItem(ctx context.Context, itemID int64) error {
	tag, err := t.tx.Exec(ctx, sqlDeleteItem, itemID)
	if err != nil {
		return wrapErr(ErrMsgFailedToDeleteItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteItemsByRarity removes every item of rarity owned by userID
func (t *LedgerTx) DeleteItemsByRarity(ctx context.Context, userID string, rarity domain.Rarity) ([]domain.Item, error) {
	rows, err := t.tx.Query(ctx, sqlDeleteItemsByRarity, userID, int16(rarity))
	return collectItems(rows, err, ErrMsgFailedToDeleteItems)
}
