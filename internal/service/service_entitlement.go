// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/models"
)

// ComputeEntitlement derives access from a mirrored subscription at now.
// It is pure and total. The rules apply in order, first match wins:
//
//  1. no subscription: free;
//  2. EndedAt at or before now: free, whatever the status;
//  3. active or trialing: pro, open-ended;
//  4. past_due or unpaid: pro until CurrentPeriodEnd while now is before it,
//     free otherwise;
//  5. any other status: free.
func ComputeEntitlement(sub *models.Subscription, now time.Time) models.Entitlement {
	if sub == nil {
		return models.FreeEntitlement("")
	}

	if sub.EndedAt != nil && !now.Before(*sub.EndedAt) {
		return models.FreeEntitlement(sub.Status)
	}

	switch sub.Status {
	case models.SubscriptionStatusActive, models.SubscriptionStatusTrialing:
		return models.Entitlement{Plan: models.PlanPro, IsPro: true, Status: sub.Status}

	case models.SubscriptionStatusPastDue, models.SubscriptionStatusUnpaid:
		if sub.CurrentPeriodEnd == nil || !now.Before(*sub.CurrentPeriodEnd) {
			return models.FreeEntitlement(sub.Status)
		}
		until := *sub.CurrentPeriodEnd
		return models.Entitlement{Plan: models.PlanPro, IsPro: true, ProValidUntil: &until, Status: sub.Status}

	case models.SubscriptionStatusCanceled,
		models.SubscriptionStatusIncomplete,
		models.SubscriptionStatusIncompleteExpired,
		models.SubscriptionStatusPaused:
		return models.FreeEntitlement(sub.Status)

	default:
		return models.FreeEntitlement(sub.Status)
	}
}

type entitlementService struct {
	subscriptions store.SubscriptionRepository
	mode          models.BillingMode

	now    func() time.Time
	logger *logger.Logger
}

// NewEntitlementService constructs an EntitlementService reading the
// subscription of the configured billing mode.
func NewEntitlementService(subscriptions store.SubscriptionRepository, cfg config.App, logger *logger.Logger) (EntitlementService, error) {
	mode, err := models.ParseBillingMode(cfg.BillingMode)
	if err != nil {
		return nil, err
	}

	return &entitlementService{
		subscriptions: subscriptions,
		mode:          mode,
		now:           time.Now,
		logger:        logger,
	}, nil
}

// GetEntitlement loads the user's subscription and evaluates it at the
// current time. A missing subscription means free.
func (s *entitlementService) GetEntitlement(ctx context.Context, userID int64) (models.Entitlement, error) {
	sub, err := s.subscriptions.Get(ctx, userID, s.mode)
	if errors.Is(err, store.ErrSubscriptionNotFound) {
		return ComputeEntitlement(nil, s.now()), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*entitlementService.GetEntitlement").
			Int64("user_id", userID).
			Msg("subscription lookup failed")
		return models.Entitlement{}, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	return ComputeEntitlement(&sub, s.now()), nil
}
