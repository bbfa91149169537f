// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "fmt"

// CartErrorKind names why a cart operation could not proceed.
type CartErrorKind int

const (
	CartNoInProgressItem CartErrorKind = iota + 1
	CartNoAccount
	CartNoOpportunity
	CartNoPricebook
	CartNoProductID
	CartNoQuote
	CartNoQuoteLineGroup
	CartSubmitOrderFailed
)

func (k CartErrorKind) String() string {
	switch k {
	case CartNoInProgressItem:
		return "no item in progress"
	case CartNoAccount:
		return "no account"
	case CartNoOpportunity:
		return "no opportunity"
	case CartNoPricebook:
		return "no pricebook"
	case CartNoProductID:
		return "product has no id"
	case CartNoQuote:
		return "no quote"
	case CartNoQuoteLineGroup:
		return "no quote line group"
	case CartSubmitOrderFailed:
		return "submit order failed"
	}
	return fmt.Sprintf("cart error %d", int(k))
}

// CartError reports a failed cart operation. errors.Is matches it against
// the sentinel of the same kind.
type CartError struct {
	Kind CartErrorKind
	Err  error
}

func (e *CartError) Error() string {
	if e.Err == nil {
		return "cart: " + e.Kind.String()
	}
	return fmt.Sprintf("cart: %s: %v", e.Kind, e.Err)
}

func (e *CartError) Unwrap() error { return e.Err }

func (e *CartError) Is(target error) bool {
	t, ok := target.(*CartError)
	return ok && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrNoInProgressItem  = &CartError{Kind: CartNoInProgressItem}
	ErrNoAccount         = &CartError{Kind: CartNoAccount}
	ErrNoOpportunity     = &CartError{Kind: CartNoOpportunity}
	ErrNoPricebook       = &CartError{Kind: CartNoPricebook}
	ErrNoProductID       = &CartError{Kind: CartNoProductID}
	ErrNoQuote           = &CartError{Kind: CartNoQuote}
	ErrNoQuoteLineGroup  = &CartError{Kind: CartNoQuoteLineGroup}
	ErrSubmitOrderFailed = &CartError{Kind: CartSubmitOrderFailed}
)

func cartError(kind CartErrorKind, err error) error {
	return &CartError{Kind: kind, Err: err}
}
