package model

// Environment represents the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Influence classifies how a context factor biases workflow synthesis.
type Influence string

const (
	InfluencePositive Influence = "positive"
	InfluenceNegative Influence = "negative"
	InfluenceNeutral  Influence = "neutral"
)

// FactorSource identifies where a context factor was derived from.
type FactorSource string

const (
	SourceUserHistory    FactorSource = "user_history"
	SourceCurrentContext FactorSource = "current_context"
	SourceExternalData   FactorSource = "external_data"
)

// UrgencyTier buckets request urgency for workflow synthesis.
type UrgencyTier string

const (
	UrgencyLow    UrgencyTier = "low"
	UrgencyMedium UrgencyTier = "medium"
	UrgencyHigh   UrgencyTier = "high"
)

// Season buckets the month of the request.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)
