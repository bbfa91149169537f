// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/models"
)

type orderService struct {
	stores *Stores
	logger *logger.Logger
}

func NewOrderService(stores *Stores, logger *logger.Logger) OrderService {
	return &orderService{stores: stores, logger: logger}
}

func (o *orderService) CurrentOrders(ctx context.Context) ([]models.Order, error) {
	log := logger.FromContext(ctx)

	opps, err := o.stores.Opportunities.Query(ctx, QueryFilter{
		Match:    map[string]any{"StageName": string(models.StageNegotiationReview)},
		PageSize: models.MaxPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("opportunities in review: %w", err)
	}

	orders := make([]models.Order, 0, len(opps))
	for _, opp := range opps {
		if opp.PrimaryQuote == "" {
			continue
		}
		quote, err := o.stores.Quotes.RecordByID(ctx, opp.PrimaryQuote)
		if errors.Is(err, ErrEntityNotFound) {
			log.Warn().Str("func", "orderService.CurrentOrders").Str("opportunity", opp.ID()).Msg("primary quote is not synced, order skipped")
			continue
		}
		if err != nil {
			return nil, err
		}

		groups, err := o.stores.QuoteLineGroups.Query(ctx, QueryFilter{
			Match:    map[string]any{"SBQQ__Quote__c": quote.ID()},
			PageSize: models.MaxPageSize,
		})
		if err != nil {
			return nil, err
		}

		order := models.Order{Opportunity: opp, Quote: quote}
		for _, g := range groups {
			if g.ID() == "" {
				continue
			}
			item, err := itemOfGroup(ctx, o.stores, g)
			if err != nil {
				return nil, err
			}
			if item.Product != nil {
				order.Items = append(order.Items, item)
			}
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CompleteOrder updates the quote first and the opportunity only once the
// quote is synced.
func (o *orderService) CompleteOrder(ctx context.Context, order models.Order) error {
	if order.Opportunity == nil || order.Quote == nil {
		return fmt.Errorf("%w: order needs an opportunity and a quote", ErrInvalidDataProvided)
	}

	order.Quote.Status = models.QuoteAccepted
	if _, err := o.stores.Quotes.UpdateEntry(ctx, order.Quote, nil); err != nil {
		return fmt.Errorf("accept quote: %w", err)
	}

	order.Opportunity.Stage = models.StageClosedWon
	if _, err := o.stores.Opportunities.UpdateEntry(ctx, order.Opportunity, nil); err != nil {
		return fmt.Errorf("close opportunity: %w", err)
	}
	return nil
}

func (o *orderService) LocallyCompleteOrder(ctx context.Context, order models.Order) error {
	if order.Opportunity == nil || order.Quote == nil {
		return fmt.Errorf("%w: order needs an opportunity and a quote", ErrInvalidDataProvided)
	}

	order.Quote.Status = models.QuoteAccepted
	if _, err := o.stores.Quotes.LocallyUpdate(ctx, order.Quote); err != nil {
		return err
	}
	order.Opportunity.Stage = models.StageClosedWon
	_, err := o.stores.Opportunities.LocallyUpdate(ctx, order.Opportunity)
	return err
}

func (o *orderService) SyncDownOrders(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, st := range o.orderStores() {
		g.Go(func() error {
			_, err := st.SyncDown(gctx)
			return err
		})
	}
	return g.Wait()
}

func (o *orderService) SyncUpDownOrders(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, st := range []syncable{o.stores.Opportunities, o.stores.Quotes} {
		g.Go(func() error {
			_, err := st.SyncUp(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return o.SyncDownOrders(ctx)
}

func (o *orderService) orderStores() []syncable {
	return []syncable{
		o.stores.ProductOptions, o.stores.Quotes, o.stores.QuoteLineItems,
		o.stores.QuoteLineGroups, o.stores.Opportunities,
	}
}
