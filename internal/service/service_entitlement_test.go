// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/mock"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func at(t time.Time) *time.Time { return &t }

// ─────────────────────────────────────────────
// ComputeEntitlement
// ─────────────────────────────────────────────

func TestComputeEntitlement(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	second := time.Second

	tests := []struct {
		name      string
		sub       *models.Subscription
		wantPro   bool
		wantUntil *time.Time
	}{
		{name: "no subscription", sub: nil},
		{name: "active", sub: &models.Subscription{Status: models.SubscriptionStatusActive}, wantPro: true},
		{name: "trialing", sub: &models.Subscription{Status: models.SubscriptionStatusTrialing}, wantPro: true},
		{
			name: "active ended a second ago",
			sub:  &models.Subscription{Status: models.SubscriptionStatusActive, EndedAt: at(now.Add(-second))},
		},
		{
			name: "active ends exactly now",
			sub:  &models.Subscription{Status: models.SubscriptionStatusActive, EndedAt: at(now)},
		},
		{
			name:    "active ends in a second",
			sub:     &models.Subscription{Status: models.SubscriptionStatusActive, EndedAt: at(now.Add(second))},
			wantPro: true,
		},
		{
			name:      "past due inside grace",
			sub:       &models.Subscription{Status: models.SubscriptionStatusPastDue, CurrentPeriodEnd: at(now.Add(second))},
			wantPro:   true,
			wantUntil: at(now.Add(second)),
		},
		{
			name: "past due grace ends now",
			sub:  &models.Subscription{Status: models.SubscriptionStatusPastDue, CurrentPeriodEnd: at(now)},
		},
		{
			name: "unpaid after grace",
			sub:  &models.Subscription{Status: models.SubscriptionStatusUnpaid, CurrentPeriodEnd: at(now.Add(-second))},
		},
		{
			name:      "unpaid inside grace",
			sub:       &models.Subscription{Status: models.SubscriptionStatusUnpaid, CurrentPeriodEnd: at(now.Add(time.Hour))},
			wantPro:   true,
			wantUntil: at(now.Add(time.Hour)),
		},
		{
			name: "past due without period end",
			sub:  &models.Subscription{Status: models.SubscriptionStatusPastDue},
		},
		{
			name: "past due inside grace but ended",
			sub: &models.Subscription{
				Status:           models.SubscriptionStatusPastDue,
				CurrentPeriodEnd: at(now.Add(time.Hour)),
				EndedAt:          at(now.Add(-second)),
			},
		},
		{
			name: "canceled with future period end",
			sub:  &models.Subscription{Status: models.SubscriptionStatusCanceled, CurrentPeriodEnd: at(now.Add(time.Hour))},
		},
		{name: "incomplete", sub: &models.Subscription{Status: models.SubscriptionStatusIncomplete}},
		{name: "incomplete expired", sub: &models.Subscription{Status: models.SubscriptionStatusIncompleteExpired}},
		{name: "paused", sub: &models.Subscription{Status: models.SubscriptionStatusPaused}},
		{name: "status outside the enum", sub: &models.Subscription{Status: "lifetime"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeEntitlement(tt.sub, now)

			assert.Equal(t, tt.wantPro, got.IsPro)
			if tt.wantPro {
				assert.Equal(t, models.PlanPro, got.Plan)
			} else {
				assert.Equal(t, models.PlanFree, got.Plan)
				assert.Nil(t, got.ProValidUntil)
			}

			if tt.wantUntil == nil {
				assert.Nil(t, got.ProValidUntil)
			} else {
				require.NotNil(t, got.ProValidUntil)
				assert.True(t, tt.wantUntil.Equal(*got.ProValidUntil))
			}
		})
	}
}

func TestComputeEntitlement_IsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{Status: models.SubscriptionStatusPastDue, CurrentPeriodEnd: at(now.Add(time.Minute))}

	first := ComputeEntitlement(sub, now)
	for range 10 {
		assert.Equal(t, first, ComputeEntitlement(sub, now))
	}
}

func TestComputeEntitlement_DoesNotAliasPeriodEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	periodEnd := now.Add(time.Hour)
	sub := &models.Subscription{Status: models.SubscriptionStatusUnpaid, CurrentPeriodEnd: &periodEnd}

	got := ComputeEntitlement(sub, now)
	periodEnd = periodEnd.Add(time.Hour)

	require.NotNil(t, got.ProValidUntil)
	assert.True(t, now.Add(time.Hour).Equal(*got.ProValidUntil))
}

// ─────────────────────────────────────────────
// GetEntitlement
// ─────────────────────────────────────────────

func newTestEntitlementService(t *testing.T, subs store.SubscriptionRepository, now time.Time) *entitlementService {
	t.Helper()
	svc, err := NewEntitlementService(subs, config.App{BillingMode: "live"}, logger.Nop())
	require.NoError(t, err)

	raw := svc.(*entitlementService)
	raw.now = func() time.Time { return now }
	return raw
}

func TestNewEntitlementService_UnknownMode(t *testing.T) {
	svc, err := NewEntitlementService(store.NewMemorySubscriptionRepository(), config.App{BillingMode: "sandbox"}, logger.Nop())
	assert.Nil(t, svc)
	require.ErrorIs(t, err, models.ErrUnknownBillingMode)
}

func TestGetEntitlement(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("no subscription is free", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		subs := mock.NewMockSubscriptionRepository(ctrl)
		subs.EXPECT().Get(gomock.Any(), int64(1), models.BillingModeLive).
			Return(models.Subscription{}, store.ErrSubscriptionNotFound)

		got, err := newTestEntitlementService(t, subs, now).GetEntitlement(ctx, 1)
		require.NoError(t, err)
		assert.False(t, got.IsPro)
		assert.Equal(t, models.PlanFree, got.Plan)
	})

	t.Run("trialing is pro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		subs := mock.NewMockSubscriptionRepository(ctrl)
		subs.EXPECT().Get(gomock.Any(), int64(2), models.BillingModeLive).
			Return(models.Subscription{UserID: 2, Mode: models.BillingModeLive, Status: models.SubscriptionStatusTrialing}, nil)

		got, err := newTestEntitlementService(t, subs, now).GetEntitlement(ctx, 2)
		require.NoError(t, err)
		assert.True(t, got.IsPro)
		assert.Nil(t, got.ProValidUntil)
	})

	t.Run("storage failure is not a verdict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		subs := mock.NewMockSubscriptionRepository(ctrl)
		subs.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.Subscription{}, errors.New("connection refused"))

		_, err := newTestEntitlementService(t, subs, now).GetEntitlement(ctx, 3)
		require.ErrorIs(t, err, ErrStorageFailure)
	})
}
