// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const AccountObject = "Account"

var AccountSchema = Extend(BaseSchema(), Schema{
	Object:    AccountObject,
	OrderPath: "Name",
	Indexes:   []string{"Name", "OwnerId"},
	Fields: []Field{
		{Name: "Name", Kind: KindString, Required: true},
		{Name: "AccountNumber", Kind: KindString},
		{Name: "Description", Kind: KindString},
		{Name: "Phone", Kind: KindString},
		{Name: "OwnerId", Kind: KindReference},
		{Name: "ParentId", Kind: KindReference},
	},
	ReadFields:   []string{"Name", "AccountNumber", "Description", "Phone", "OwnerId", "ParentId"},
	CreateFields: []string{"Name", "AccountNumber", "Description", "Phone", "OwnerId", "ParentId"},
	UpdateFields: []string{"Name", "AccountNumber", "Description", "Phone", "OwnerId", "ParentId"},
})

type Account struct {
	Base

	Name          string
	AccountNumber string
	Description   string
	Phone         string
	OwnerID       string
	ParentID      string
}

func (a *Account) Schema() Schema { return AccountSchema }

func (a *Account) Bind(rec *Record) error {
	r := newFieldReader(AccountSchema, rec)
	a.Name = r.String("Name")
	a.AccountNumber = r.String("AccountNumber")
	a.Description = r.String("Description")
	a.Phone = r.String("Phone")
	a.OwnerID = r.String("OwnerId")
	a.ParentID = r.String("ParentId")
	if err := r.Err(); err != nil {
		return err
	}
	a.bind(rec)
	return nil
}

func (a *Account) Record() *Record {
	rec := a.ensure(AccountObject)
	setString(rec.Fields, "Name", a.Name)
	setString(rec.Fields, "AccountNumber", a.AccountNumber)
	setString(rec.Fields, "Description", a.Description)
	setString(rec.Fields, "Phone", a.Phone)
	setString(rec.Fields, "OwnerId", a.OwnerID)
	setString(rec.Fields, "ParentId", a.ParentID)
	return rec
}
