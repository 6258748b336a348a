// Package constants holds shared domain-level constant values.
package constants

// Supported Pub/Sub provider names, matched against config.PubSub.Provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
