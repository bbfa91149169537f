// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

const ContactObject = "Contact"

// ContactSchema is the schema of the contacts explorer soup.
var ContactSchema = Extend(BaseSchema(), Schema{
	Object:    ContactObject,
	Soup:      "contacts",
	OrderPath: "LastName",
	Indexes:   []string{"FirstName", "LastName"},
	Fields: []Field{
		{Name: "FirstName", Kind: KindString},
		{Name: "LastName", Kind: KindString, Required: true},
		{Name: "Name", Kind: KindString},
		{Name: "Title", Kind: KindString},
		{Name: "Department", Kind: KindString},
		{Name: "MobilePhone", Kind: KindString},
		{Name: "HomePhone", Kind: KindString},
		{Name: "Email", Kind: KindString},
	},
	ReadFields:   []string{"FirstName", "LastName", "Name", "Title", "Department", "MobilePhone", "HomePhone", "Email"},
	CreateFields: []string{"FirstName", "LastName", "Title", "Department", "MobilePhone", "HomePhone", "Email"},
	UpdateFields: []string{"FirstName", "LastName", "Title", "Department", "MobilePhone", "HomePhone", "Email"},
})

// Contact is a person record of the contacts explorer.
type Contact struct {
	Base

	FirstName   string
	LastName    string
	Title       string
	Department  string
	MobilePhone string
	HomePhone   string
	Email       string
}

func (c *Contact) Schema() Schema { return ContactSchema }

func (c *Contact) Bind(rec *Record) error {
	r := newFieldReader(ContactSchema, rec)
	c.FirstName = r.String("FirstName")
	c.LastName = r.String("LastName")
	c.Title = r.String("Title")
	c.Department = r.String("Department")
	c.MobilePhone = r.String("MobilePhone")
	c.HomePhone = r.String("HomePhone")
	c.Email = r.String("Email")
	if err := r.Err(); err != nil {
		return err
	}
	c.bind(rec)
	return nil
}

func (c *Contact) Record() *Record {
	rec := c.ensure(ContactObject)
	setString(rec.Fields, "FirstName", c.FirstName)
	setString(rec.Fields, "LastName", c.LastName)
	setString(rec.Fields, "Name", c.FullName())
	setString(rec.Fields, "Title", c.Title)
	setString(rec.Fields, "Department", c.Department)
	setString(rec.Fields, "MobilePhone", c.MobilePhone)
	setString(rec.Fields, "HomePhone", c.HomePhone)
	setString(rec.Fields, "Email", c.Email)
	return rec
}

// FullName joins the first and last name, skipping empty parts.
func (c *Contact) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}
