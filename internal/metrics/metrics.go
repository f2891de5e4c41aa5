package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventHandlerErrors,
			Help:      HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	CardsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameCardsDrawn, Help: HelpTextCardsDrawn},
		[]string{LabelRarity},
	)

	Upgrades = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameUpgrades, Help: HelpTextUpgrades},
		[]string{LabelRarity, LabelOutcome},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameItemsSold, Help: HelpTextItemsSold},
		[]string{LabelRarity},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameItemsBought, Help: HelpTextItemsBought},
		[]string{LabelRarity},
	)

	PointsEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNamePointsEarned, Help: HelpTextPointsEarned},
		[]string{LabelSource},
	)

	PointsSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNamePointsSpent, Help: HelpTextPointsSpent},
		[]string{LabelSource},
	)

	PointsTransferred = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNamePointsTransfered, Help: HelpTextPointsTransfered},
	)

	Wagers = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameWagers, Help: HelpTextWagers},
		[]string{LabelOutcome},
	)

	PerksPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNamePerksPurchased, Help: HelpTextPerksPurchased},
		[]string{LabelPerk},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: Namespace, Name: MetricNameUsersRegistered, Help: HelpTextUsersRegistered},
	)
)
