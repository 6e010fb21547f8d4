package effect

// categories is the static effect policy. Reclassifying an effect (for
// deployments where a cache or notification outage should block order
// completion) is a one-line edit here, never a code-path change.
var categories = map[Kind]Category{
	KindUpdateInventory:      Critical,
	KindUpdateTotalPurchases: Critical,
	KindCacheResult:          Optional,
	KindSendEmail:            Optional,
	KindSendAlerts:           Optional,
	KindTrackEvent:           Optional,
}

// groups routes each effect to the retry policy matching its collaborator.
var groups = map[Kind]Group{
	KindUpdateInventory:      GroupStore,
	KindUpdateTotalPurchases: GroupStore,
	KindCacheResult:          GroupCache,
	KindSendEmail:            GroupDefault,
	KindSendAlerts:           GroupDefault,
	KindTrackEvent:           GroupDefault,
}

// Classify returns the category for an effect kind.
// Unknown kinds default to Critical: an unclassified write failing
// silently is worse than an operation failing loudly.
func Classify(kind Kind) Category {
	if c, ok := categories[kind]; ok {
		return c
	}
	return Critical
}

// GroupOf returns the retry policy group for an effect kind.
func GroupOf(kind Kind) Group {
	if g, ok := groups[kind]; ok {
		return g
	}
	return GroupDefault
}
