// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-soup-sync/models"
)

// SyncCallback observes a running sync. It is called with a RUNNING state
// after each page or batch and exactly once with the terminal state.
type SyncCallback func(state models.SyncState)

// SyncTarget names the soup a sync reads or writes and the object it
// mirrors. Name defaults to models.SyncDownName or models.SyncUpName of the
// schema object.
type SyncTarget struct {
	Name   string
	Schema models.Schema
}

// SyncManager moves records between soups and the remote API. Syncs of
// one soup are serialized; syncs of different soups may run concurrently.
type SyncManager interface {
	// SyncDown pages through the remote records of the target object and
	// merges them into the soup according to opts.MergeMode. Records that
	// fail to decode are skipped and counted, never stored.
	SyncDown(ctx context.Context, target SyncTarget, opts models.SyncOptions, cb SyncCallback) (models.SyncState, error)

	// SyncUp pushes every locally changed record of the soup. A failing
	// record is marked failed and the rest still run; the sync then ends
	// FAILED.
	SyncUp(ctx context.Context, target SyncTarget, opts models.SyncOptions, cb SyncCallback) (models.SyncState, error)

	// ReSync runs a saved sync again. A sync-down only asks for records
	// modified after the newest timestamp it has seen.
	ReSync(ctx context.Context, name string, cb SyncCallback) (models.SyncState, error)

	GetSyncStatus(ctx context.Context, name string) (models.SyncState, error)

	// CleanResyncGhosts removes clean local records of a sync-down's soup
	// that no longer exist remotely and returns how many were removed.
	CleanResyncGhosts(ctx context.Context, name string) (int, error)
}

// SyncJob runs a periodic sync of every store in the background.
type SyncJob interface {
	// Start launches the job, stopping a previous run first. The job ends
	// when ctx is cancelled or Stop is called.
	Start(ctx context.Context)
	// Stop cancels the job and waits for the running sync to return.
	Stop()
}

// CartService builds a cart item in memory and commits it as quote line
// groups and items of the account's open opportunity.
type CartService interface {
	// BeginItem starts configuring product, replacing any item in progress.
	BeginItem(product *models.Product, quantity int)
	InProgressItem() (models.CartItem, bool)
	// UpdateInProgressItem applies a selected option to the item in
	// progress following the option type rules.
	UpdateInProgressItem(option models.CartOption) error
	DiscardInProgressItem()

	// CommitToCart writes the item in progress to the cart of accountID and
	// syncs it up. On failure every record created on the way is removed
	// again and the item stays in progress.
	CommitToCart(ctx context.Context, accountID string) error
	CurrentCart(ctx context.Context, accountID string) ([]models.CartItem, error)
	CartCount(ctx context.Context, accountID string) (int, error)
	// SubmitOrder moves the open opportunity of accountID to review.
	SubmitOrder(ctx context.Context, accountID string) error
}

// OrderService lists submitted orders and completes them.
type OrderService interface {
	// CurrentOrders returns the opportunities in review with their primary
	// quote and items.
	CurrentOrders(ctx context.Context) ([]models.Order, error)
	// CompleteOrder accepts the quote and wins the opportunity, syncing
	// each write.
	CompleteOrder(ctx context.Context, order models.Order) error
	// LocallyCompleteOrder does the same without syncing.
	LocallyCompleteOrder(ctx context.Context, order models.Order) error
	// SyncDownOrders fetches every object an order is built from.
	SyncDownOrders(ctx context.Context) error
	// SyncUpDownOrders pushes opportunities and quotes, then fetches orders.
	SyncUpDownOrders(ctx context.Context) error
}
