// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/models"
)

// submitted commits one latte for the catalog account and submits it.
func submitted(t *testing.T) (*fakeRemote, *testClient, OrderService, catalog) {
	t.Helper()
	remote := newFakeRemote()
	c, cart, cat := newCartClient(t, remote, true)
	ctx := testContext()

	cart.BeginItem(product(t, c, cat.latte), 1)
	require.NoError(t, cart.CommitToCart(ctx, cat.account))
	require.NoError(t, cart.SubmitOrder(ctx, cat.account))

	return remote, c, NewOrderService(c.stores, logger.Nop()), cat
}

func TestOrderService_SubmitAndComplete(t *testing.T) {
	remote, _, orders, _ := submitted(t)
	ctx := testContext()

	quote := remote.live(models.QuoteObject)[0]
	opp := remote.live(models.OpportunityObject)[0]
	assert.Equal(t, string(models.QuotePresented), quote.fields["SBQQ__Status__c"])
	assert.Equal(t, string(models.StageNegotiationReview), opp.fields["StageName"])

	current, err := orders.CurrentOrders(ctx)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, quote.id, current[0].Quote.ID())
	require.Len(t, current[0].Items, 1)
	assert.Equal(t, "Latte", current[0].Items[0].Product.Name)

	require.NoError(t, orders.CompleteOrder(ctx, current[0]))

	quote, _ = remote.row(models.QuoteObject, quote.id)
	opp, _ = remote.row(models.OpportunityObject, opp.id)
	assert.Equal(t, string(models.QuoteAccepted), quote.fields["SBQQ__Status__c"])
	assert.Equal(t, string(models.StageClosedWon), opp.fields["StageName"])

	current, err = orders.CurrentOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestOrderService_LocallyCompleteThenSync(t *testing.T) {
	remote, c, orders, _ := submitted(t)
	ctx := testContext()

	current, err := orders.CurrentOrders(ctx)
	require.NoError(t, err)
	require.Len(t, current, 1)

	require.NoError(t, orders.LocallyCompleteOrder(ctx, current[0]))

	local, err := c.stores.Opportunities.RecordByID(ctx, current[0].Opportunity.ID())
	require.NoError(t, err)
	assert.True(t, local.IsLocallyUpdated())
	opp, _ := remote.row(models.OpportunityObject, local.ID())
	assert.Equal(t, string(models.StageNegotiationReview), opp.fields["StageName"], "not pushed yet")

	require.NoError(t, orders.SyncUpDownOrders(ctx))

	opp, _ = remote.row(models.OpportunityObject, local.ID())
	assert.Equal(t, string(models.StageClosedWon), opp.fields["StageName"])
	local, err = c.stores.Opportunities.RecordByID(ctx, local.ID())
	require.NoError(t, err)
	assert.False(t, local.IsLocal())
}

func TestOrderService_SyncDownOrders(t *testing.T) {
	remote, _, _, _ := submitted(t)

	// a second device sees the submitted order after a sync-down
	other := newTestClient(t, remote)
	orders := NewOrderService(other.stores, logger.Nop())
	ctx := testContext()

	_, err := other.stores.Products.SyncDown(ctx)
	require.NoError(t, err)
	require.NoError(t, orders.SyncDownOrders(ctx))

	current, err := orders.CurrentOrders(ctx)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Len(t, current[0].Items, 1)
}

func TestOrderService_CompleteOrder_Invalid(t *testing.T) {
	orders := NewOrderService(nil, logger.Nop())

	assert.ErrorIs(t, orders.CompleteOrder(testContext(), models.Order{}), ErrInvalidDataProvided)
	assert.ErrorIs(t, orders.LocallyCompleteOrder(testContext(), models.Order{}), ErrInvalidDataProvided)
}
