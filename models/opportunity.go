// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const OpportunityObject = "Opportunity"

// OpportunityStage mirrors the StageName picklist.
type OpportunityStage string

const (
	StageProspecting        OpportunityStage = "Prospecting"
	StageQualification      OpportunityStage = "Qualification"
	StageNeedsAnalysis      OpportunityStage = "Needs Analysis"
	StageValueProposition   OpportunityStage = "Value Proposition"
	StageDecisionMakers     OpportunityStage = "Id. Decision Makers"
	StagePerceptionAnalysis OpportunityStage = "Perception Analysis"
	StageProposalPriceQuote OpportunityStage = "Proposal/Price Quote"
	StageNegotiationReview  OpportunityStage = "Negotiation/Review"
	StageClosedWon          OpportunityStage = "Closed Won"
	StageClosedLost         OpportunityStage = "Closed Lost"
)

var opportunityFields = []string{
	"AccountId", "Name", "SBQQ__OrderGroupID__c", "SBQQ__Ordered__c", "SBQQ__PrimaryQuote__c",
	"Type", "StageName", "Pricebook2Id", "CloseDate",
}

var OpportunitySchema = Extend(BaseSchema(), Schema{
	Object:    OpportunityObject,
	OrderPath: "Name",
	Indexes:   []string{"AccountId", "StageName", "SBQQ__PrimaryQuote__c"},
	Fields: []Field{
		{Name: "AccountId", Kind: KindReference},
		{Name: "Name", Kind: KindString, Required: true},
		{Name: "SBQQ__OrderGroupID__c", Kind: KindString},
		{Name: "SBQQ__Ordered__c", Kind: KindBool},
		{Name: "SBQQ__PrimaryQuote__c", Kind: KindReference},
		{Name: "Type", Kind: KindString},
		{Name: "StageName", Kind: KindString, Required: true},
		{Name: "Pricebook2Id", Kind: KindReference},
		{Name: "CloseDate", Kind: KindDateTime, Required: true},
	},
	ReadFields:   opportunityFields,
	CreateFields: opportunityFields,
	UpdateFields: []string{
		"Name", "SBQQ__OrderGroupID__c", "SBQQ__Ordered__c", "SBQQ__PrimaryQuote__c",
		"Type", "StageName", "Pricebook2Id", "CloseDate",
	},
})

type Opportunity struct {
	Base

	AccountID    string
	Name         string
	OrderGroupID string
	Ordered      bool
	PrimaryQuote string
	Type         string
	Stage        OpportunityStage
	PricebookID  string
	CloseDate    time.Time
}

func (o *Opportunity) Schema() Schema { return OpportunitySchema }

func (o *Opportunity) Bind(rec *Record) error {
	r := newFieldReader(OpportunitySchema, rec)
	o.AccountID = r.String("AccountId")
	o.Name = r.String("Name")
	o.OrderGroupID = r.String("SBQQ__OrderGroupID__c")
	o.Ordered = r.Bool("SBQQ__Ordered__c")
	o.PrimaryQuote = r.String("SBQQ__PrimaryQuote__c")
	o.Type = r.String("Type")
	o.Stage = OpportunityStage(r.String("StageName"))
	o.PricebookID = r.String("Pricebook2Id")
	o.CloseDate = r.Time("CloseDate")
	if err := r.Err(); err != nil {
		return err
	}
	o.bind(rec)
	return nil
}

func (o *Opportunity) Record() *Record {
	rec := o.ensure(OpportunityObject)
	setString(rec.Fields, "AccountId", o.AccountID)
	setString(rec.Fields, "Name", o.Name)
	setString(rec.Fields, "SBQQ__OrderGroupID__c", o.OrderGroupID)
	rec.Fields["SBQQ__Ordered__c"] = o.Ordered
	setString(rec.Fields, "SBQQ__PrimaryQuote__c", o.PrimaryQuote)
	setString(rec.Fields, "Type", o.Type)
	setString(rec.Fields, "StageName", string(o.Stage))
	setString(rec.Fields, "Pricebook2Id", o.PricebookID)
	setDate(rec.Fields, "CloseDate", o.CloseDate)
	return rec
}

// InProgress reports whether the opportunity still accepts cart items.
func (o *Opportunity) InProgress() bool {
	return o.Stage == StageProspecting
}
