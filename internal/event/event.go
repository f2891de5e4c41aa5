package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Ledger event types, re-exported from domain for subscribers
const (
	CardDrawn         = Type(domain.EventTypeCardDrawn)
	ItemUpgraded      = Type(domain.EventTypeItemUpgraded)
	ItemBought        = Type(domain.EventTypeItemBought)
	ItemSold          = Type(domain.EventTypeItemSold)
	PointsTransferred = Type(domain.EventTypePointsTransferred)
	WagerSettled      = Type(domain.EventTypeWagerSettled)
	RewardClaimed     = Type(domain.EventTypeRewardClaimed)
	PerkPurchased     = Type(domain.EventTypePerkPurchased)
	UserRegistered    = Type(domain.EventTypeUserRegistered)
)

// AllTypes lists every event type the services publish
var AllTypes = []Type{
	CardDrawn, ItemUpgraded, ItemBought, ItemSold, PointsTransferred,
	WagerSettled, RewardClaimed, PerkPurchased, UserRegistered,
}

// Type-safe event constructors

// NewCardDrawnEvent creates a card drawn event
func NewCardDrawnEvent(item domain.Item) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CardDrawn,
		Payload: domain.CardDrawnPayload{
			UserID:    item.UserID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Rarity:    item.Rarity,
			Price:     item.Price,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewItemUpgradedEvent creates an upgrade outcome event
func NewItemUpgradedEvent(userID string, res *domain.UpgradeResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemUpgraded,
		Payload: domain.ItemUpgradedPayload{
			UserID:     userID,
			Success:    res.Success,
			FromRarity: res.OldItem.Rarity,
			Delta:      res.Delta,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewItemBoughtEvent creates a purchase event
func NewItemBoughtEvent(item domain.Item) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemBought,
		Payload: domain.ItemTradedPayload{
			UserID:     item.UserID,
			Count:      1,
			Rarity:     item.Rarity,
			TotalValue: item.Price,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewItemSoldEvent creates a sale event; proceeds is what the user received
func NewItemSoldEvent(userID string, rarity domain.Rarity, count int, proceeds int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemSold,
		Payload: domain.ItemTradedPayload{
			UserID:     userID,
			Count:      count,
			Rarity:     rarity,
			TotalValue: proceeds,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewPointsTransferredEvent creates a transfer event
func NewPointsTransferredEvent(senderID, recipientID string, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PointsTransferred,
		Payload: domain.PointsTransferredPayload{
			SenderID:    senderID,
			RecipientID: recipientID,
			Amount:      amount,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewWagerSettledEvent creates a roulette outcome event
func NewWagerSettledEvent(userID string, res *domain.WagerResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WagerSettled,
		Payload: domain.WagerSettledPayload{
			UserID:     userID,
			Won:        res.Won,
			Stake:      res.Stake,
			Multiplier: res.Multiplier,
			Delta:      res.Delta,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewRewardClaimedEvent creates a daily or farm claim event
func NewRewardClaimedEvent(userID, source string, amount int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardClaimed,
		Payload: domain.RewardClaimedPayload{
			UserID:    userID,
			Source:    source,
			Amount:    amount,
			Timestamp: time.Now().Unix(),
		},
		Metadata: Metadata{"source": source},
	}
}

// NewPerkPurchasedEvent creates a perk purchase event
func NewPerkPurchasedEvent(userID string, perk domain.PerkInfo) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PerkPurchased,
		Payload: domain.PerkPurchasedPayload{
			UserID:    userID,
			Perk:      perk.Perk,
			Price:     perk.Price,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewUserRegisteredEvent creates a registration event
func NewUserRegisteredEvent(u *domain.User) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserRegistered,
		Payload: domain.UserRegisteredPayload{
			UserID:    u.ID,
			Username:  u.Username,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is what services depend on to emit events after commit.
// Delivery failures never reach the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of event.Type synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// NopPublisher discards events
type NopPublisher struct{}

// PublishWithRetry does nothing
func (NopPublisher) PublishWithRetry(context.Context, Event) {}

// Recorder is a Publisher that keeps every event, for tests and dry runs
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// PublishWithRetry records evt
func (r *Recorder) PublishWithRetry(_ context.Context, evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the recorded event types in order
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
