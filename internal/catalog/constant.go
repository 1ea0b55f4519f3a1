package catalog

// Sentinel label emitted by the collapser when no candidate clears the
// weight floor, and the capability names reserved for fallback handling.
const (
	LabelUnknown = "unknown"

	CapabilityClarifyIntent = "clarify_intent"
	CapabilityExpedite      = "expedite_handling"
)
