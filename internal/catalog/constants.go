package catalog

// WeightSumTarget is the required total of all draw weights
const WeightSumTarget = 100.0

// WeightSumTolerance absorbs floating-point drift when summing weights
const WeightSumTolerance = 1e-9

// Embedded resource names
const (
	SchemaName = "catalog.schema.json"
)

// Error message format strings
const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog: %w"
	ErrMsgSchemaInvalid      = "catalog schema validation failed: %w"
	ErrMsgNoTiers            = "no tiers defined"
	ErrFmtTooManyTiers       = "%w: %d tiers exceed the storable maximum of %d"
	ErrFmtTierOutOfOrder     = "%w: tier at index %d has rarity %d, expected %d"
	ErrFmtNegativeWeight     = "%w: tier %d has negative weight %v"
	ErrFmtWeightSum          = "%w: weights sum to %v, expected %v"
	ErrFmtUpgradeChanceRange = "%w: tier %d upgrade chance %v outside [0,100]"
	ErrFmtTopTierUpgradeable = "%w: top tier %d must have upgrade chance 0, got %v"
	ErrFmtNonPositivePrice   = "%w: %q in tier %d has non-positive price %d"
	ErrFmtDuplicateEntry     = "%w: duplicate entry %q in tier %d"
	ErrFmtEntryUnknownTier   = "%w: entry %q references unknown tier %d"
	ErrFmtEmptyPool          = "%w: tier %d"
)

// Log messages
const (
	LogMsgCatalogLoaded   = "Catalog loaded"
	LogMsgEmptyRarityPool = "Rarity tier has an empty pool; draws landing on it will fail"
)
