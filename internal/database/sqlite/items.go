package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

func scanItem(row rowScanner) (domain.Item, error) {
	var (
		it         domain.Item
		obtainedAt int64
	)
	if err := row.Scan(&it.ID, &it.UserID, &it.Name, &it.Rarity, &it.Price, &obtainedAt); err != nil {
		return domain.Item{}, err
	}
	it.ObtainedAt = time.Unix(0, obtainedAt).UTC()
	return it, nil
}

func collectItems(rows *sql.Rows, err error, msg string) ([]domain.Item, error) {
	if err != nil {
		return nil, wrapErr(msg, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrapErr(msg, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(msg, err)
	}
	return items, nil
}

// ListItems returns the user's items in display order
func (l *Ledger) ListItems(ctx context.Context, userID string, rarity *domain.Rarity) ([]domain.Item, error) {
	if rarity != nil {
		rows, err := l.db.QueryContext(ctx, sqlListItemsByRarity, userID, int(*rarity))
		return collectItems(rows, err, ErrMsgFailedToListItems)
	}
	rows, err := l.db.QueryContext(ctx, sqlListItems, userID)
	return collectItems(rows, err, ErrMsgFailedToListItems)
}

// CollectionValue sums the face values of the user's items
func (l *Ledger) CollectionValue(ctx context.Context, userID string) (int64, error) {
	var total int64
	if err := l.db.QueryRowContext(ctx, sqlCollectionValue, userID).Scan(&total); err != nil {
		return 0, wrapErr(ErrMsgFailedToSumItems, err)
	}
	return total, nil
}

// GetItemForUpdate reads an item row inside the transaction
func (t *LedgerTx) GetItemForUpdate(ctx context.Context, itemID int64) (*domain.Item, error) {
	it, err := scanItem(t.tx.QueryRowContext(ctx, sqlGetItem, itemID))
	if err != nil {
		return nil, notFoundOr(err, domain.ErrItemNotFound, ErrMsgFailedToGetItem)
	}
	return &it, nil
}

// InsertItem adds an item to a user's collection
func (t *LedgerTx) InsertItem(ctx context.Context, item domain.NewItem, at time.Time) (*domain.Item, error) {
	row := t.tx.QueryRowContext(ctx, sqlInsertItem, item.UserID, item.Name, int(item.Rarity), item.Price, at.UnixNano())
	it, err := scanItem(row)
	if err != nil {
		return nil, wrapErr(ErrMsgFailedToInsertItem, err)
	}
	return &it, nil
}

// DeleteItem removes an item
func (t *LedgerTx) DeleteItem(ctx context.Context, itemID int64) error {
	res, err := t.tx.ExecContext(ctx, sqlDeleteItem, itemID)
	if err != nil {
		return wrapErr(ErrMsgFailedToDeleteItem, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteItemsByRarity removes every item of rarity owned by userID
func (t *LedgerTx) DeleteItemsByRarity(ctx context.Context, userID string, rarity domain.Rarity) ([]domain.Item, error) {
	rows, err := t.tx.QueryContext(ctx, sqlDeleteItemsByRarity, userID, int(rarity))
	return collectItems(rows, err, ErrMsgFailedToDeleteItem)
}
