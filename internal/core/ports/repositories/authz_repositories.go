package repositories

import "context"

// CapabilityReader defines read access to user capability grants.
type CapabilityReader interface {
	// HasCapability reports whether the user holds the named capability.
	HasCapability(ctx context.Context, userID string, capability string) (bool, error)
}
