// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Catalog objects are synced down only; their create and update lists stay
// at the base lists.
const (
	ProductObject       = "Product2"
	ProductOptionObject = "SBQQ__ProductOption__c"
	PricebookObject     = "Pricebook2"
)

// FreePricebookName is the pricebook the cart orders against.
const FreePricebookName = "Free"

var ProductSchema = Extend(BaseSchema(), Schema{
	Object:    ProductObject,
	OrderPath: "Name",
	Indexes:   []string{"Name", "FeaturedItem__c"},
	Fields: []Field{
		{Name: "Name", Kind: KindString, Required: true},
		{Name: "Description", Kind: KindString},
		{Name: "IconImageURL__c", Kind: KindString},
		{Name: "FeaturedItem__c", Kind: KindBool},
		{Name: "FeaturedItemPriority__c", Kind: KindInteger},
	},
	ReadFields: []string{"Name", "Description", "IconImageURL__c", "FeaturedItem__c", "FeaturedItemPriority__c"},
})

type Product struct {
	Base

	Name             string
	Description      string
	IconImageURL     string
	Featured         bool
	FeaturedPriority int
}

func (p *Product) Schema() Schema { return ProductSchema }

func (p *Product) Bind(rec *Record) error {
	r := newFieldReader(ProductSchema, rec)
	p.Name = r.String("Name")
	p.Description = r.String("Description")
	p.IconImageURL = r.String("IconImageURL__c")
	p.Featured = r.Bool("FeaturedItem__c")
	p.FeaturedPriority = r.Int("FeaturedItemPriority__c")
	if err := r.Err(); err != nil {
		return err
	}
	p.bind(rec)
	return nil
}

func (p *Product) Record() *Record {
	rec := p.ensure(ProductObject)
	setString(rec.Fields, "Name", p.Name)
	setString(rec.Fields, "Description", p.Description)
	setString(rec.Fields, "IconImageURL__c", p.IconImageURL)
	rec.Fields["FeaturedItem__c"] = p.Featured
	rec.Fields["FeaturedItemPriority__c"] = p.FeaturedPriority
	return rec
}

// OptionType drives how a selected option changes an in-progress cart item.
type OptionType string

const (
	OptionSlider      OptionType = "Slider"
	OptionPicklist    OptionType = "Picklist"
	OptionMultiselect OptionType = "Multiselect"
	OptionInteger     OptionType = "Integer"
)

var ProductOptionSchema = Extend(BaseSchema(), Schema{
	Object:    ProductOptionObject,
	OrderPath: "SBQQ__Number__c",
	Indexes:   []string{"SBQQ__ConfiguredSKU__c", "SBQQ__OptionalSKU__c"},
	Fields: []Field{
		{Name: "Name", Kind: KindString},
		{Name: "SBQQ__ConfiguredSKU__c", Kind: KindReference},
		{Name: "SBQQ__OptionalSKU__c", Kind: KindReference},
		{Name: "SBQQ__ProductName__c", Kind: KindString},
		{Name: "SBQQ__ProductFamily__c", Kind: KindString},
		{Name: "OptionType__c", Kind: KindString, Required: true},
		{Name: "SBQQ__Quantity__c", Kind: KindInteger},
		{Name: "SBQQ__MinQuantity__c", Kind: KindInteger},
		{Name: "SBQQ__MaxQuantity__c", Kind: KindInteger},
		{Name: "SBQQ__UnitPrice__c", Kind: KindNumber},
		{Name: "SBQQ__Number__c", Kind: KindInteger},
	},
	ReadFields: []string{
		"Name", "SBQQ__ConfiguredSKU__c", "SBQQ__OptionalSKU__c", "SBQQ__ProductName__c",
		"SBQQ__ProductFamily__c", "OptionType__c", "SBQQ__Quantity__c", "SBQQ__MinQuantity__c",
		"SBQQ__MaxQuantity__c", "SBQQ__UnitPrice__c", "SBQQ__Number__c",
	},
})

type ProductOption struct {
	Base

	Name              string
	ConfiguredProduct string
	OptionSKU         string
	ProductName       string
	ProductFamily     string
	Type              OptionType
	DefaultQuantity   int
	MinQuantity       int
	MaxQuantity       int
	UnitPrice         float64
	OrderNumber       int
}

func (o *ProductOption) Schema() Schema { return ProductOptionSchema }

func (o *ProductOption) Bind(rec *Record) error {
	r := newFieldReader(ProductOptionSchema, rec)
	o.Name = r.String("Name")
	o.ConfiguredProduct = r.String("SBQQ__ConfiguredSKU__c")
	o.OptionSKU = r.String("SBQQ__OptionalSKU__c")
	o.ProductName = r.String("SBQQ__ProductName__c")
	o.ProductFamily = r.String("SBQQ__ProductFamily__c")
	o.Type = OptionType(r.String("OptionType__c"))
	o.DefaultQuantity = r.Int("SBQQ__Quantity__c")
	o.MinQuantity = r.Int("SBQQ__MinQuantity__c")
	o.MaxQuantity = r.Int("SBQQ__MaxQuantity__c")
	o.UnitPrice = r.Float("SBQQ__UnitPrice__c")
	o.OrderNumber = r.Int("SBQQ__Number__c")
	if err := r.Err(); err != nil {
		return err
	}
	o.bind(rec)
	return nil
}

func (o *ProductOption) Record() *Record {
	rec := o.ensure(ProductOptionObject)
	setString(rec.Fields, "Name", o.Name)
	setString(rec.Fields, "SBQQ__ConfiguredSKU__c", o.ConfiguredProduct)
	setString(rec.Fields, "SBQQ__OptionalSKU__c", o.OptionSKU)
	setString(rec.Fields, "SBQQ__ProductName__c", o.ProductName)
	setString(rec.Fields, "SBQQ__ProductFamily__c", o.ProductFamily)
	setString(rec.Fields, "OptionType__c", string(o.Type))
	rec.Fields["SBQQ__Quantity__c"] = o.DefaultQuantity
	rec.Fields["SBQQ__MinQuantity__c"] = o.MinQuantity
	rec.Fields["SBQQ__MaxQuantity__c"] = o.MaxQuantity
	rec.Fields["SBQQ__UnitPrice__c"] = o.UnitPrice
	rec.Fields["SBQQ__Number__c"] = o.OrderNumber
	return rec
}

var PricebookSchema = Extend(BaseSchema(), Schema{
	Object:    PricebookObject,
	OrderPath: "Name",
	Indexes:   []string{"Name"},
	Fields: []Field{
		{Name: "Name", Kind: KindString, Required: true},
		{Name: "Description", Kind: KindString},
		{Name: "IsActive", Kind: KindBool},
		{Name: "IsStandard", Kind: KindBool},
	},
	ReadFields: []string{"Name", "Description", "IsActive", "IsStandard"},
})

type Pricebook struct {
	Base

	Name        string
	Description string
	IsActive    bool
	IsStandard  bool
}

func (p *Pricebook) Schema() Schema { return PricebookSchema }

func (p *Pricebook) Bind(rec *Record) error {
	r := newFieldReader(PricebookSchema, rec)
	p.Name = r.String("Name")
	p.Description = r.String("Description")
	p.IsActive = r.Bool("IsActive")
	p.IsStandard = r.Bool("IsStandard")
	if err := r.Err(); err != nil {
		return err
	}
	p.bind(rec)
	return nil
}

func (p *Pricebook) Record() *Record {
	rec := p.ensure(PricebookObject)
	setString(rec.Fields, "Name", p.Name)
	setString(rec.Fields, "Description", p.Description)
	rec.Fields["IsActive"] = p.IsActive
	rec.Fields["IsStandard"] = p.IsStandard
	return rec
}
