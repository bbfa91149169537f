// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	QuoteObject          = "SBQQ__Quote__c"
	QuoteLineGroupObject = "SBQQ__QuoteLineGroup__c"
	QuoteLineItemObject  = "SBQQ__QuoteLine__c"
)

// QuoteStatus mirrors the SBQQ__Status__c picklist.
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "Draft"
	QuoteInReview  QuoteStatus = "In Review"
	QuoteApproved  QuoteStatus = "Approved"
	QuoteDenied    QuoteStatus = "Denied"
	QuotePresented QuoteStatus = "Presented"
	QuoteAccepted  QuoteStatus = "Accepted"
)

var quoteFields = []string{
	"Name", "OwnerId", "SBQQ__Account__c", "SBQQ__Opportunity2__c", "SBQQ__PricebookId__c",
	"SBQQ__Status__c", "SBQQ__Primary__c", "SBQQ__LineItemsGrouped__c", "SBQQ__NetAmount__c",
}

var QuoteSchema = Extend(BaseSchema(), Schema{
	Object:    QuoteObject,
	OrderPath: "Name",
	Indexes:   []string{"SBQQ__Opportunity2__c", "SBQQ__Account__c", "SBQQ__Status__c"},
	Fields: []Field{
		{Name: "Name", Kind: KindString},
		{Name: "OwnerId", Kind: KindReference},
		{Name: "SBQQ__Account__c", Kind: KindReference},
		{Name: "SBQQ__Opportunity2__c", Kind: KindReference},
		{Name: "SBQQ__PricebookId__c", Kind: KindReference},
		{Name: "SBQQ__Status__c", Kind: KindString},
		{Name: "SBQQ__Primary__c", Kind: KindBool},
		{Name: "SBQQ__LineItemsGrouped__c", Kind: KindBool},
		{Name: "SBQQ__NetAmount__c", Kind: KindNumber},
	},
	ReadFields: quoteFields,
	CreateFields: []string{
		"OwnerId", "SBQQ__Account__c", "SBQQ__Opportunity2__c", "SBQQ__PricebookId__c",
		"SBQQ__Status__c", "SBQQ__Primary__c", "SBQQ__LineItemsGrouped__c",
	},
	UpdateFields: quoteFields,
})

type Quote struct {
	Base

	Number           string
	OwnerID          string
	AccountID        string
	OpportunityID    string
	PricebookID      string
	Status           QuoteStatus
	Primary          bool
	LineItemsGrouped bool
	NetAmount        float64
}

func (q *Quote) Schema() Schema { return QuoteSchema }

func (q *Quote) Bind(rec *Record) error {
	r := newFieldReader(QuoteSchema, rec)
	q.Number = r.String("Name")
	q.OwnerID = r.String("OwnerId")
	q.AccountID = r.String("SBQQ__Account__c")
	q.OpportunityID = r.String("SBQQ__Opportunity2__c")
	q.PricebookID = r.String("SBQQ__PricebookId__c")
	q.Status = QuoteStatus(r.String("SBQQ__Status__c"))
	q.Primary = r.Bool("SBQQ__Primary__c")
	q.LineItemsGrouped = r.Bool("SBQQ__LineItemsGrouped__c")
	q.NetAmount = r.Float("SBQQ__NetAmount__c")
	if err := r.Err(); err != nil {
		return err
	}
	q.bind(rec)
	return nil
}

func (q *Quote) Record() *Record {
	rec := q.ensure(QuoteObject)
	setString(rec.Fields, "Name", q.Number)
	setString(rec.Fields, "OwnerId", q.OwnerID)
	setString(rec.Fields, "SBQQ__Account__c", q.AccountID)
	setString(rec.Fields, "SBQQ__Opportunity2__c", q.OpportunityID)
	setString(rec.Fields, "SBQQ__PricebookId__c", q.PricebookID)
	setString(rec.Fields, "SBQQ__Status__c", string(q.Status))
	rec.Fields["SBQQ__Primary__c"] = q.Primary
	rec.Fields["SBQQ__LineItemsGrouped__c"] = q.LineItemsGrouped
	rec.Fields["SBQQ__NetAmount__c"] = q.NetAmount
	return rec
}

var QuoteLineGroupSchema = Extend(BaseSchema(), Schema{
	Object:    QuoteLineGroupObject,
	OrderPath: "SBQQ__Number__c",
	Indexes:   []string{"SBQQ__Quote__c"},
	Fields: []Field{
		{Name: "Name", Kind: KindString},
		{Name: "SBQQ__Account__c", Kind: KindReference},
		{Name: "SBQQ__Number__c", Kind: KindInteger},
		{Name: "SBQQ__Quote__c", Kind: KindReference, Required: true},
		{Name: "SBQQ__NetTotal__c", Kind: KindNumber},
	},
	ReadFields:   []string{"Name", "SBQQ__Account__c", "SBQQ__Number__c", "SBQQ__Quote__c", "SBQQ__NetTotal__c"},
	CreateFields: []string{"SBQQ__Account__c", "Name", "SBQQ__Quote__c"},
	UpdateFields: []string{"Name", "SBQQ__Number__c", "SBQQ__NetTotal__c"},
})

// QuoteLineGroup bundles the line items of one configured cart item.
type QuoteLineGroup struct {
	Base

	Name      string
	AccountID string
	Number    int
	QuoteID   string
	NetTotal  float64
}

func (g *QuoteLineGroup) Schema() Schema { return QuoteLineGroupSchema }

func (g *QuoteLineGroup) Bind(rec *Record) error {
	r := newFieldReader(QuoteLineGroupSchema, rec)
	g.Name = r.String("Name")
	g.AccountID = r.String("SBQQ__Account__c")
	g.Number = r.Int("SBQQ__Number__c")
	g.QuoteID = r.String("SBQQ__Quote__c")
	g.NetTotal = r.Float("SBQQ__NetTotal__c")
	if err := r.Err(); err != nil {
		return err
	}
	g.bind(rec)
	return nil
}

func (g *QuoteLineGroup) Record() *Record {
	rec := g.ensure(QuoteLineGroupObject)
	setString(rec.Fields, "Name", g.Name)
	setString(rec.Fields, "SBQQ__Account__c", g.AccountID)
	rec.Fields["SBQQ__Number__c"] = g.Number
	setString(rec.Fields, "SBQQ__Quote__c", g.QuoteID)
	rec.Fields["SBQQ__NetTotal__c"] = g.NetTotal
	return rec
}

var quoteLineFields = []string{
	"SBQQ__Description__c", "SBQQ__Favorite__c", "SBQQ__Group__c", "SBQQ__Number__c",
	"SBQQ__Product__c", "SBQQ__Quantity__c", "SBQQ__Quote__c", "SBQQ__NetTotal__c",
}

var QuoteLineItemSchema = Extend(BaseSchema(), Schema{
	Object:    QuoteLineItemObject,
	OrderPath: "SBQQ__Number__c",
	Indexes:   []string{"SBQQ__Group__c", "SBQQ__Quote__c"},
	Fields: []Field{
		{Name: "SBQQ__Description__c", Kind: KindString},
		{Name: "SBQQ__Favorite__c", Kind: KindBool},
		{Name: "SBQQ__Group__c", Kind: KindReference},
		{Name: "SBQQ__Number__c", Kind: KindInteger, Required: true},
		{Name: "SBQQ__Product__c", Kind: KindReference, Required: true},
		{Name: "SBQQ__Quantity__c", Kind: KindNumber, Required: true},
		{Name: "SBQQ__Quote__c", Kind: KindReference},
		{Name: "SBQQ__NetTotal__c", Kind: KindNumber},
	},
	ReadFields:   quoteLineFields,
	CreateFields: quoteLineFields,
	UpdateFields: quoteLineFields,
})

type QuoteLineItem struct {
	Base

	Description string
	Favorite    bool
	GroupID     string
	LineNumber  int
	ProductID   string
	Quantity    float64
	QuoteID     string
	NetTotal    float64
}

func (l *QuoteLineItem) Schema() Schema { return QuoteLineItemSchema }

func (l *QuoteLineItem) Bind(rec *Record) error {
	r := newFieldReader(QuoteLineItemSchema, rec)
	l.Description = r.String("SBQQ__Description__c")
	l.Favorite = r.Bool("SBQQ__Favorite__c")
	l.GroupID = r.String("SBQQ__Group__c")
	l.LineNumber = r.Int("SBQQ__Number__c")
	l.ProductID = r.String("SBQQ__Product__c")
	l.Quantity = r.Float("SBQQ__Quantity__c")
	l.QuoteID = r.String("SBQQ__Quote__c")
	l.NetTotal = r.Float("SBQQ__NetTotal__c")
	if err := r.Err(); err != nil {
		return err
	}
	l.bind(rec)
	return nil
}

func (l *QuoteLineItem) Record() *Record {
	rec := l.ensure(QuoteLineItemObject)
	setString(rec.Fields, "SBQQ__Description__c", l.Description)
	rec.Fields["SBQQ__Favorite__c"] = l.Favorite
	setString(rec.Fields, "SBQQ__Group__c", l.GroupID)
	rec.Fields["SBQQ__Number__c"] = l.LineNumber
	setString(rec.Fields, "SBQQ__Product__c", l.ProductID)
	rec.Fields["SBQQ__Quantity__c"] = l.Quantity
	setString(rec.Fields, "SBQQ__Quote__c", l.QuoteID)
	rec.Fields["SBQQ__NetTotal__c"] = l.NetTotal
	return rec
}
