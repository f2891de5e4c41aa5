package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/PhonesBot_Go/internal/domain"
	"github.com/osse101/PhonesBot_Go/internal/event"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

// EventMetricsCollector turns ledger events into business metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every ledger event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range event.AllTypes {
		bus.Subscribe(t, e.HandleEvent)
	}
}

// HandleEvent records the metrics of one event. Payloads that fail to
// decode are counted as handler errors but never fail the publish.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func record(evt event.Event) error {
	switch evt.Type {
	case event.CardDrawn:
		p, err := event.DecodePayload[domain.CardDrawnPayload](evt.Payload)
		if err != nil {
			return err
		}
		CardsDrawn.WithLabelValues(rarityLabel(p.Rarity)).Inc()

	case event.ItemUpgraded:
		p, err := event.DecodePayload[domain.ItemUpgradedPayload](evt.Payload)
		if err != nil {
			return err
		}
		outcome := OutcomeFailure
		if p.Success {
			outcome = OutcomeSuccess
		}
		Upgrades.WithLabelValues(rarityLabel(p.FromRarity), outcome).Inc()

	case event.ItemBought:
		p, err := event.DecodePayload[domain.ItemTradedPayload](evt.Payload)
		if err != nil {
			return err
		}
		ItemsBought.WithLabelValues(rarityLabel(p.Rarity)).Add(float64(p.Count))
		PointsSpent.WithLabelValues(SourceShop).Add(float64(p.TotalValue))

	case event.ItemSold:
		p, err := event.DecodePayload[domain.ItemTradedPayload](evt.Payload)
		if err != nil {
			return err
		}
		ItemsSold.WithLabelValues(rarityLabel(p.Rarity)).Add(float64(p.Count))
		PointsEarned.WithLabelValues(domain.RewardSourceSale).Add(float64(p.TotalValue))

	case event.PointsTransferred:
		p, err := event.DecodePayload[domain.PointsTransferredPayload](evt.Payload)
		if err != nil {
			return err
		}
		PointsTransferred.Add(float64(p.Amount))

	case event.WagerSettled:
		p, err := event.DecodePayload[domain.WagerSettledPayload](evt.Payload)
		if err != nil {
			return err
		}
		if p.Won {
			Wagers.WithLabelValues(OutcomeWin).Inc()
			PointsEarned.WithLabelValues(domain.RewardSourceWager).Add(float64(p.Delta))
		} else {
			Wagers.WithLabelValues(OutcomeLoss).Inc()
			PointsSpent.WithLabelValues(domain.RewardSourceWager).Add(float64(-p.Delta))
		}

	case event.RewardClaimed:
		p, err := event.DecodePayload[domain.RewardClaimedPayload](evt.Payload)
		if err != nil {
			return err
		}
		PointsEarned.WithLabelValues(p.Source).Add(float64(p.Amount))

	case event.PerkPurchased:
		p, err := event.DecodePayload[domain.PerkPurchasedPayload](evt.Payload)
		if err != nil {
			return err
		}
		PerksPurchased.WithLabelValues(string(p.Perk)).Inc()
		PointsSpent.WithLabelValues(SourcePerk).Add(float64(p.Price))

	case event.UserRegistered:
		UsersRegistered.Inc()
	}
	return nil
}

func rarityLabel(r domain.Rarity) string {
	return strconv.Itoa(int(r))
}
