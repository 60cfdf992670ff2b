// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"
)

// SubscriptionStatus is the billing status mirrored from the payment
// processor. The set is closed: values outside it are rejected by
// [ParseSubscriptionStatus] before they reach storage.
type SubscriptionStatus string

const (
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusPaused            SubscriptionStatus = "paused"
)

// SubscriptionStatuses lists every known status in a stable order.
var SubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusActive,
	SubscriptionStatusTrialing,
	SubscriptionStatusPastDue,
	SubscriptionStatusUnpaid,
	SubscriptionStatusCanceled,
	SubscriptionStatusIncomplete,
	SubscriptionStatusIncompleteExpired,
	SubscriptionStatusPaused,
}

// ErrUnknownSubscriptionStatus is returned by [ParseSubscriptionStatus] for a
// value outside the closed status set.
var ErrUnknownSubscriptionStatus = errors.New("unknown subscription status")

// ErrUnknownBillingMode is returned by [ParseBillingMode] for anything other
// than "test" or "live".
var ErrUnknownBillingMode = errors.New("unknown billing mode")

// ParseSubscriptionStatus converts a raw processor value into a
// [SubscriptionStatus].
func ParseSubscriptionStatus(raw string) (SubscriptionStatus, error) {
	for _, status := range SubscriptionStatuses {
		if string(status) == raw {
			return status, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSubscriptionStatus, raw)
}

// BillingMode separates processor test data from live data. A user has at
// most one subscription per mode.
type BillingMode string

const (
	BillingModeTest BillingMode = "test"
	BillingModeLive BillingMode = "live"
)

// ParseBillingMode converts a raw value into a [BillingMode].
func ParseBillingMode(raw string) (BillingMode, error) {
	switch BillingMode(raw) {
	case BillingModeTest, BillingModeLive:
		return BillingMode(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBillingMode, raw)
	}
}

// Subscription is the locally mirrored billing state of one user in one
// billing mode. It is written only by billing sync.
type Subscription struct {
	UserID int64              `json:"user_id"`
	Mode   BillingMode        `json:"mode"`
	Status SubscriptionStatus `json:"status"`

	// CurrentPeriodEnd bounds the grace window for past_due and unpaid.
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`

	// EndedAt is a hard stop: at or after it the user is free whatever the status.
	EndedAt *time.Time `json:"ended_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Subscription model.
func (s Subscription) TableName() string {
	return "subscriptions"
}

// SubscriptionUpdate is what the billing-sync collaborator pushes. The owner
// is addressed either directly by UserID or by a CheckoutRef issued before
// the buyer had an account.
type SubscriptionUpdate struct {
	UserID           int64      `json:"user_id,omitempty"`
	CheckoutRef      string     `json:"checkout_ref,omitempty"`
	Mode             string     `json:"mode"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
}
