// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CartItem is a product being configured before it is committed to the
// cart.
type CartItem struct {
	Product  *Product
	Options  []CartOption
	Quantity int
}

type CartOption struct {
	Option   *ProductOption
	Quantity int
}

// Order is an opportunity submitted for review, with its primary quote and
// the configured items of that quote.
type Order struct {
	Opportunity *Opportunity
	Quote       *Quote
	Items       []CartItem
}
