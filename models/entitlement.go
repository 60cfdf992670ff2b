package models

import "time"

// Plan is the access tier derived from a subscription.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Entitlement is the computed, non-persisted access decision for a user.
type Entitlement struct {
	Plan  Plan `json:"plan"`
	IsPro bool `json:"is_pro"`

	// ProValidUntil is set only inside a grace window (past_due, unpaid).
	// Nil together with IsPro means open-ended access.
	ProValidUntil *time.Time `json:"pro_valid_until,omitempty"`

	// Status echoes the subscription status for diagnostics. Empty when the
	// user has no subscription.
	Status SubscriptionStatus `json:"status,omitempty"`
}

// FreeEntitlement returns the entitlement of a user without paid access.
func FreeEntitlement(status SubscriptionStatus) Entitlement {
	return Entitlement{Plan: PlanFree, IsPro: false, Status: status}
}
