package economy

import (
	"context"
	"fmt"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

func (s *service) Buy(ctx context.Context, userID string, ref domain.CatalogRef) (*domain.Item, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgBuyCalled, "user_id", userID, "rarity", ref.Rarity, "name", ref.Name)

	if err := s.validateRarity(ref.Rarity); err != nil {
		return nil, err
	}
	entry, ok := s.table.Lookup(ref.Rarity, ref.Name)
	if !ok {
		return nil, fmt.Errorf(ErrFmtCatalogEntry, domain.ErrCatalogEntryNotFound, ref.Name, ref.Rarity)
	}
	if entry.Rarity > s.cfg.ShopMaxRarity {
		return nil, fmt.Errorf(ErrFmtNotBuyable, domain.ErrNotBuyable, entry.Rarity, entry.Name)
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := requireFunds(user, entry.Price); err != nil {
		return nil, err
	}

	item, err := tx.InsertItem(ctx, domain.NewItem{
		UserID: userID,
		Name:   entry.Name,
		Rarity: entry.Rarity,
		Price:  entry.Price,
	}, s.cooldowns.Now())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInsertItemFailed, err)
	}

	user.Balance -= entry.Price
	user.TotalItems++
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgItemPurchased, "user_id", userID, "item", item.Name, "price", item.Price)
	s.publisher.PublishWithRetry(ctx, event.NewItemBoughtEvent(*item))
	return item, nil
}

func (s *service) Sell(ctx context.Context, userID string, itemID int64) (*domain.SaleResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSellCalled, "user_id", userID, "item_id", itemID)

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	item, err := tx.GetItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, itemID, err)
	}
	if item.UserID != userID {
		return nil, fmt.Errorf(ErrFmtNotOwned, domain.ErrNotOwned, itemID)
	}

	if err := tx.DeleteItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf(ErrMsgDeleteItemFailed, itemID, err)
	}

	proceeds := s.saleProceeds(item.Price)
	user.Balance += proceeds
	user.TotalItems--
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgItemSold, "user_id", userID, "item", item.Name, "proceeds", proceeds)
	s.publisher.PublishWithRetry(ctx, event.NewItemSoldEvent(userID, item.Rarity, 1, proceeds))

	return &domain.SaleResult{Count: 1, Proceeds: proceeds, Balance: user.Balance}, nil
}

func (s *service) SellAll(ctx context.Context, userID string, rarity domain.Rarity) (*domain.SaleResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSellAllCalled, "user_id", userID, "rarity", rarity)

	if err := s.validateRarity(rarity); err != nil {
		return nil, err
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	sold, err := tx.DeleteItemsByRarity(ctx, userID, rarity)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDeleteItemsFailed, rarity, err)
	}
	if len(sold) == 0 {
		return nil, fmt.Errorf(ErrFmtNoneOwned, domain.ErrNoneOwned, rarity)
	}

	var total int64
	for _, it := range sold {
		total += it.Price
	}
	// floored once on the sum, not per item
	proceeds := s.saleProceeds(total)

	user.Balance += proceeds
	user.TotalItems -= len(sold)
	if err := tx.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateUserFailed, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgItemsSold, "user_id", userID, "rarity", rarity, "count", len(sold), "proceeds", proceeds)
	s.publisher.PublishWithRetry(ctx, event.NewItemSoldEvent(userID, rarity, len(sold), proceeds))

	return &domain.SaleResult{Count: len(sold), Proceeds: proceeds, Balance: user.Balance}, nil
}
