// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/saga"
	"github.com/MKhiriev/go-soup-sync/models"
)

// opportunityCloseIn is how far in the future a new cart opportunity
// closes.
const opportunityCloseIn = 90001 * time.Second

type cartService struct {
	stores *Stores
	now    func() time.Time

	mu   sync.Mutex
	item *models.CartItem

	logger *logger.Logger
}

func NewCartService(stores *Stores, logger *logger.Logger) CartService {
	return &cartService{
		stores: stores,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// ── item in progress ────────────────────────────────────────────────────────

func (c *cartService) BeginItem(product *models.Product, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.item = &models.CartItem{Product: product, Quantity: quantity}
}

func (c *cartService) InProgressItem() (models.CartItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.item == nil {
		return models.CartItem{}, false
	}
	item := *c.item
	item.Options = slices.Clone(c.item.Options)
	return item, true
}

func (c *cartService) DiscardInProgressItem() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.item = nil
}

// UpdateInProgressItem applies option to the item in progress. An option of
// a product family already on the item is resolved by type: an integer
// option takes the new quantity or leaves at zero, a slider option replaces
// the old one, a picklist or multiselect option toggles it off. Options of
// a new family are appended.
func (c *cartService) UpdateInProgressItem(option models.CartOption) error {
	if option.Option == nil || option.Option.Type == "" {
		return fmt.Errorf("%w: option without a type", ErrInvalidDataProvided)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.item == nil {
		return ErrNoInProgressItem
	}

	family := option.Option.ProductFamily
	idx := slices.IndexFunc(c.item.Options, func(o models.CartOption) bool {
		return family != "" && o.Option != nil && o.Option.ProductFamily == family
	})
	if idx < 0 {
		c.item.Options = append(c.item.Options, option)
		return nil
	}

	switch option.Option.Type {
	case models.OptionInteger:
		if option.Quantity > 0 {
			c.item.Options[idx].Quantity = option.Quantity
		} else {
			c.item.Options = slices.Delete(c.item.Options, idx, idx+1)
		}
	case models.OptionSlider:
		c.item.Options = slices.Delete(c.item.Options, idx, idx+1)
		c.item.Options = append(c.item.Options, option)
	case models.OptionPicklist, models.OptionMultiselect:
		c.item.Options = slices.Delete(c.item.Options, idx, idx+1)
	default:
		return fmt.Errorf("%w: unknown option type %q", ErrInvalidDataProvided, option.Option.Type)
	}
	return nil
}

// ── commit ──────────────────────────────────────────────────────────────────

// CommitToCart runs the cart saga: find or create the open opportunity,
// find or create its primary quote, create a line group and the line
// items, then sync groups and lines up. Every record the saga created is
// deleted again when a later step fails.
func (c *cartService) CommitToCart(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	item, ok := c.InProgressItem()
	if !ok || item.Product == nil {
		return ErrNoInProgressItem
	}
	if item.Product.ID() == "" {
		return ErrNoProductID
	}

	account, err := c.stores.Accounts.RecordByID(ctx, accountID)
	if err != nil {
		return cartError(CartNoAccount, err)
	}
	pricebook, err := c.stores.Pricebooks.First(ctx, QueryFilter{Match: map[string]any{"Name": models.FreePricebookName}})
	if err != nil {
		return cartError(CartNoPricebook, err)
	}

	var (
		opp             *models.Opportunity
		oppCreated      bool
		quote           *models.Quote
		quoteCreated    bool
		previousPrimary string
		group           *models.QuoteLineGroup
		lines           []*models.QuoteLineItem
	)

	removeLines := func(ctx context.Context) error {
		var errs []error
		for _, line := range lines {
			if _, err := c.stores.QuoteLineItems.LocallyDelete(ctx, line); err != nil {
				errs = append(errs, err)
			}
		}
		if _, err := c.stores.QuoteLineItems.SyncUpDown(ctx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	}

	s := saga.New("commitToCart")

	s.Add("opportunity", func(ctx context.Context) error {
		found, err := c.openOpportunity(ctx, account.ID())
		if err == nil {
			opp = found
			return nil
		}
		if !errors.Is(err, ErrEntityNotFound) {
			return err
		}

		created, err := c.stores.Opportunities.CreateEntry(ctx, &models.Opportunity{
			AccountID:   account.ID(),
			Name:        account.Name,
			Stage:       models.StageProspecting,
			CloseDate:   c.now().Add(opportunityCloseIn),
			PricebookID: pricebook.ID(),
		}, nil)
		if err == nil && created.ID() == "" {
			err = ErrNoOpportunity
		}
		if err != nil {
			discard(ctx, c.stores.Opportunities, created)
			return cartError(CartNoOpportunity, err)
		}
		opp, oppCreated = created, true
		return nil
	}, func(ctx context.Context) error {
		if !oppCreated {
			return nil
		}
		return c.stores.Opportunities.DeleteEntry(ctx, opp, nil)
	})

	s.Add("quote", func(ctx context.Context) error {
		if opp.PrimaryQuote != "" {
			found, err := c.stores.Quotes.RecordByID(ctx, opp.PrimaryQuote)
			if err == nil {
				quote = found
				return nil
			}
			if !errors.Is(err, ErrEntityNotFound) {
				return err
			}
		}

		created, err := c.stores.Quotes.CreateEntry(ctx, &models.Quote{
			AccountID:        account.ID(),
			OpportunityID:    opp.ID(),
			PricebookID:      pricebook.ID(),
			Status:           models.QuoteDraft,
			Primary:          true,
			LineItemsGrouped: true,
		}, nil)
		if err == nil && created.ID() == "" {
			err = ErrNoQuote
		}
		if err != nil {
			discard(ctx, c.stores.Quotes, created)
			return cartError(CartNoQuote, err)
		}
		quote, quoteCreated = created, true
		return nil
	}, func(ctx context.Context) error {
		if !quoteCreated {
			return nil
		}
		return c.stores.Quotes.DeleteEntry(ctx, quote, nil)
	})

	s.Add("primary quote", func(ctx context.Context) error {
		if opp.PrimaryQuote == quote.ID() {
			return nil
		}
		previousPrimary = opp.PrimaryQuote
		opp.PrimaryQuote = quote.ID()
		updated, err := c.stores.Opportunities.UpdateEntry(ctx, opp, nil)
		if err != nil {
			return cartError(CartNoOpportunity, err)
		}
		opp = updated
		return nil
	}, func(ctx context.Context) error {
		if !quoteCreated {
			return nil
		}
		opp.PrimaryQuote = previousPrimary
		_, err := c.stores.Opportunities.UpdateEntry(ctx, opp, nil)
		return err
	})

	s.Add("line group", func(ctx context.Context) error {
		created, err := c.stores.QuoteLineGroups.LocallyCreate(ctx, &models.QuoteLineGroup{
			Name:      item.Product.Name,
			AccountID: quote.AccountID,
			QuoteID:   quote.ID(),
		})
		if err != nil {
			return cartError(CartNoQuoteLineGroup, err)
		}
		group = created
		return nil
	}, func(ctx context.Context) error {
		return c.stores.QuoteLineGroups.DeleteEntry(ctx, group, nil)
	})

	s.Add("line items", func(ctx context.Context) error {
		pending := []*models.QuoteLineItem{{
			GroupID:    group.Key(),
			LineNumber: 1,
			ProductID:  item.Product.ID(),
			Quantity:   float64(item.Quantity),
			QuoteID:    quote.ID(),
		}}
		for i, opt := range item.Options {
			if opt.Option == nil || opt.Option.OptionSKU == "" {
				log.Warn().Str("func", "cartService.CommitToCart").Int("option", i).Msg("option without a product, skipped")
				continue
			}
			pending = append(pending, &models.QuoteLineItem{
				GroupID:    group.Key(),
				LineNumber: len(pending) + 1,
				ProductID:  opt.Option.OptionSKU,
				Quantity:   float64(opt.Quantity),
				QuoteID:    quote.ID(),
			})
		}

		created, err := c.stores.QuoteLineItems.UpsertNewEntries(ctx, pending...)
		lines = created
		if err != nil {
			if undoErr := removeLines(context.WithoutCancel(ctx)); undoErr != nil {
				log.Err(undoErr).Str("func", "cartService.CommitToCart").Msg("removing partial line items failed")
			}
			return err
		}
		return nil
	}, removeLines)

	s.Add("sync", func(ctx context.Context) error {
		return c.syncCart(ctx, quote.ID())
	}, nil)

	if err := s.Run(ctx); err != nil {
		return err
	}

	c.DiscardInProgressItem()
	log.Info().Str("account", accountID).Str("quote", quote.ID()).Msg("item committed to cart")
	return nil
}

// syncCart pushes the line groups of quoteID, points every line at the
// server id of its group and pushes the lines.
func (c *cartService) syncCart(ctx context.Context, quoteID string) error {
	if _, err := c.stores.QuoteLineGroups.SyncUpDown(ctx); err != nil {
		return cartError(CartNoQuoteLineGroup, err)
	}

	groups, err := c.groupsOfQuote(ctx, quoteID)
	if err != nil {
		return err
	}

	for _, g := range groups {
		if g.ID() == "" {
			return ErrNoQuoteLineGroup
		}
		if g.ExternalID() == "" {
			continue
		}
		orphans, err := c.stores.QuoteLineItems.Query(ctx, QueryFilter{
			Match:    map[string]any{"SBQQ__Group__c": g.ExternalID()},
			PageSize: models.MaxPageSize,
		})
		if err != nil {
			return err
		}
		for _, line := range orphans {
			line.GroupID = g.ID()
			if _, err = c.stores.QuoteLineItems.LocallyUpdate(ctx, line); err != nil {
				return err
			}
		}
	}

	_, err = c.stores.QuoteLineItems.SyncUpDown(ctx)
	return err
}

// ── reads ───────────────────────────────────────────────────────────────────

func (c *cartService) CurrentCart(ctx context.Context, accountID string) ([]models.CartItem, error) {
	quote, err := c.primaryQuote(ctx, accountID)
	if errors.Is(err, ErrEntityNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	groups, err := c.groupsOfQuote(ctx, quote.ID())
	if err != nil {
		return nil, err
	}

	items := make([]models.CartItem, 0, len(groups))
	for _, g := range groups {
		item, err := c.itemOfGroup(ctx, g)
		if err != nil {
			return nil, err
		}
		if item.Product != nil {
			items = append(items, item)
		}
	}
	return items, nil
}

func (c *cartService) CartCount(ctx context.Context, accountID string) (int, error) {
	quote, err := c.primaryQuote(ctx, accountID)
	if errors.Is(err, ErrEntityNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.stores.QuoteLineGroups.Count(ctx, QueryFilter{Match: map[string]any{"SBQQ__Quote__c": quote.ID()}})
}

// SubmitOrder syncs the cart, presents the primary quote and moves the
// opportunity to review. Quote and opportunity are written concurrently.
func (c *cartService) SubmitOrder(ctx context.Context, accountID string) error {
	opp, err := c.openOpportunity(ctx, accountID)
	if err != nil {
		return cartError(CartSubmitOrderFailed, err)
	}
	if opp.PrimaryQuote == "" {
		return cartError(CartSubmitOrderFailed, ErrNoQuote)
	}
	quote, err := c.stores.Quotes.RecordByID(ctx, opp.PrimaryQuote)
	if err != nil {
		return cartError(CartSubmitOrderFailed, err)
	}

	if err = c.syncCart(ctx, quote.ID()); err != nil {
		return cartError(CartSubmitOrderFailed, err)
	}

	quote.Status = models.QuotePresented
	opp.Stage = models.StageNegotiationReview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.stores.Quotes.UpdateEntry(gctx, quote, nil)
		return err
	})
	g.Go(func() error {
		_, err := c.stores.Opportunities.UpdateEntry(gctx, opp, nil)
		return err
	})
	if err = g.Wait(); err != nil {
		return cartError(CartSubmitOrderFailed, err)
	}
	return nil
}

// ── lookups shared with the order service ───────────────────────────────────

func (c *cartService) openOpportunity(ctx context.Context, accountID string) (*models.Opportunity, error) {
	return c.stores.Opportunities.First(ctx, QueryFilter{Match: map[string]any{
		"AccountId": accountID,
		"StageName": string(models.StageProspecting),
	}})
}

func (c *cartService) primaryQuote(ctx context.Context, accountID string) (*models.Quote, error) {
	opp, err := c.openOpportunity(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if opp.PrimaryQuote == "" {
		return nil, fmt.Errorf("%w: opportunity %s has no primary quote", ErrEntityNotFound, opp.ID())
	}
	return c.stores.Quotes.RecordByID(ctx, opp.PrimaryQuote)
}

func (c *cartService) groupsOfQuote(ctx context.Context, quoteID string) ([]*models.QuoteLineGroup, error) {
	return c.stores.QuoteLineGroups.Query(ctx, QueryFilter{
		Match:    map[string]any{"SBQQ__Quote__c": quoteID},
		PageSize: models.MaxPageSize,
	})
}

// discard removes a record whose create call failed to sync, so a failed
// step leaves nothing behind.
func discard[T any, P models.EntityPtr[T]](ctx context.Context, s *ObjectStore[T, P], e P) {
	if e == nil {
		return
	}
	if err := s.DeleteEntry(context.WithoutCancel(ctx), e, nil); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "discard").Str("object", s.Schema().Object).
			Str("externalId", e.Record().ExternalID).Msg("removing unsynced record failed")
	}
}

func (c *cartService) itemOfGroup(ctx context.Context, g *models.QuoteLineGroup) (models.CartItem, error) {
	return itemOfGroup(ctx, c.stores, g)
}

// itemOfGroup rebuilds a cart item from the lines of g: line one is the
// product, the others are options looked up by their SKU.
func itemOfGroup(ctx context.Context, stores *Stores, g *models.QuoteLineGroup) (models.CartItem, error) {
	var lines []*models.QuoteLineItem
	for _, key := range []string{g.ID(), g.ExternalID()} {
		if key == "" {
			continue
		}
		found, err := stores.QuoteLineItems.Query(ctx, QueryFilter{
			Match:    map[string]any{"SBQQ__Group__c": key},
			PageSize: models.MaxPageSize,
		})
		if err != nil {
			return models.CartItem{}, err
		}
		lines = append(lines, found...)
	}
	slices.SortFunc(lines, func(a, b *models.QuoteLineItem) int { return a.LineNumber - b.LineNumber })

	var item models.CartItem
	for i, line := range lines {
		if i == 0 {
			product, err := stores.Products.RecordByKey(ctx, line.ProductID)
			if err != nil {
				return models.CartItem{}, err
			}
			item.Product = product
			item.Quantity = int(line.Quantity)
			continue
		}

		option, err := stores.ProductOptions.First(ctx, QueryFilter{Match: map[string]any{"SBQQ__OptionalSKU__c": line.ProductID}})
		if errors.Is(err, ErrEntityNotFound) {
			continue
		}
		if err != nil {
			return models.CartItem{}, err
		}
		item.Options = append(item.Options, models.CartOption{Option: option, Quantity: int(line.Quantity)})
	}

	slices.SortFunc(item.Options, func(a, b models.CartOption) int { return a.Option.OrderNumber - b.Option.OrderNumber })
	return item, nil
}
