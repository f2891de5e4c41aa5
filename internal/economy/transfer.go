package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
	"github.com/osse101/PhonesBot_Go/internal/repository"
)

func (s *service) Transfer(ctx context.Context, senderID, recipientRef string, amount int64) (*domain.TransferResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgTransferCalled, "sender_id", senderID, "recipient", recipientRef, "amount", amount)

	if amount <= 0 {
		return nil, fmt.Errorf(ErrFmtInvalidAmount, domain.ErrInvalidAmount, amount)
	}

	// Funds are checked first so an overdrawn transfer reports the balance
	// whatever the recipient; the locked read below re-checks it.
	current, err := s.ledger.GetUser(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetUserFailed, err)
	}
	if err := requireFunds(current, amount); err != nil {
		return nil, err
	}

	// Resolved before the transaction: the resolver reads outside it.
	target, err := s.users.ResolveRecipient(ctx, recipientRef)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgResolveRecipientFailed, err)
	}
	if target.ID == senderID {
		return nil, domain.ErrSelfTransfer
	}

	tx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock both rows in ascending id order so opposing transfers cannot deadlock.
	sender, recipient, err := lockPair(ctx, tx, senderID, target.ID)
	if err != nil {
		return nil, err
	}
	if err := requireFunds(sender, amount); err != nil {
		return nil, err
	}

	sender.Balance -= amount
	recipient.Balance += amount
	for _, u := range ordered(sender, recipient) {
		if err := tx.UpdateUser(ctx, u); err != nil {
			return nil, fmt.Errorf(ErrMsgUpdateUserFailed, u.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgPointsTransferred, "sender_id", senderID, "recipient_id", recipient.ID, "amount", amount)
	s.publisher.PublishWithRetry(ctx, event.NewPointsTransferredEvent(senderID, recipient.ID, amount))

	return &domain.TransferResult{
		SenderID:         senderID,
		RecipientID:      recipient.ID,
		RecipientName:    recipient.Username,
		Amount:           amount,
		SenderBalance:    sender.Balance,
		RecipientBalance: recipient.Balance,
	}, nil
}

func lockPair(ctx context.Context, tx repository.LedgerTx, senderID, recipientID string) (*domain.User, *domain.User, error) {
	ids := []string{senderID, recipientID}
	if recipientID < senderID {
		ids[0], ids[1] = recipientID, senderID
	}

	locked := make(map[string]*domain.User, 2)
	for _, id := range ids {
		u, err := tx.GetUserForUpdate(ctx, id)
		if err != nil {
			if id == recipientID && errors.Is(err, domain.ErrUserNotFound) {
				return nil, nil, fmt.Errorf(ErrFmtRecipientVanished, domain.ErrRecipientNotFound, id)
			}
			return nil, nil, fmt.Errorf(ErrMsgGetUserFailed, err)
		}
		locked[id] = u
	}
	return locked[senderID], locked[recipientID], nil
}

func ordered(a, b *domain.User) []*domain.User {
	if b.ID < a.ID {
		return []*domain.User{b, a}
	}
	return []*domain.User{a, b}
}
