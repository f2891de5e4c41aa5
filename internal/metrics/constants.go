package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric
const Namespace = "phonesbot"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCardsDrawn       = "cards_drawn_total"
	MetricNameUpgrades         = "upgrades_total"
	MetricNameItemsSold        = "items_sold_total"
	MetricNameItemsBought      = "items_bought_total"
	MetricNamePointsEarned     = "points_earned_total"
	MetricNamePointsSpent      = "points_spent_total"
	MetricNamePointsTransfered = "points_transferred_total"
	MetricNameWagers           = "wagers_total"
	MetricNamePerksPurchased   = "perks_purchased_total"
	MetricNameUsersRegistered  = "users_registered_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events delivered to the metrics subscriber"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextCardsDrawn       = "Total number of cards drawn, by rarity"
	HelpTextUpgrades         = "Total number of upgrade attempts, by outcome"
	HelpTextItemsSold        = "Total number of items sold back, by rarity"
	HelpTextItemsBought      = "Total number of items bought from the shop, by rarity"
	HelpTextPointsEarned     = "Total points credited, by source"
	HelpTextPointsSpent      = "Total points debited, by source"
	HelpTextPointsTransfered = "Total points moved between users"
	HelpTextWagers           = "Total number of roulette spins, by outcome"
	HelpTextPerksPurchased   = "Total number of perk purchases, by perk"
	HelpTextUsersRegistered  = "Total number of accounts created"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelRarity  = "rarity"
	LabelOutcome = "outcome"
	LabelSource  = "source"
	LabelPerk    = "perk"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeWin     = "win"
	OutcomeLoss    = "loss"

	SourceShop    = "shop"
	SourceUpgrade = "upgrade"
	SourcePerk    = "perk"

	// UnmatchedRoute labels requests chi could not route, keeping path cardinality bounded
	UnmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
