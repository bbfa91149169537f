// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Schemas returns every object type known to the client, in the order a
// full sync-down should fetch them: catalog first, then the cart graph from
// parent to child.
func Schemas() []Schema {
	return []Schema{
		ContactSchema,
		AccountSchema,
		PricebookSchema,
		ProductSchema,
		ProductOptionSchema,
		OpportunitySchema,
		QuoteSchema,
		QuoteLineGroupSchema,
		QuoteLineItemSchema,
	}
}

// LookupSchema finds the schema of a server object name.
func LookupSchema(object string) (Schema, bool) {
	for _, s := range Schemas() {
		if s.Object == object {
			return s, true
		}
	}
	return Schema{}, false
}
