// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/info", h.getServerInfo)
	})

	// record API
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/sobjects/{object}", h.queryRecords)
		r.Post("/api/sobjects/{object}", h.createRecord)
		r.Post("/api/sobjects/{object}/lastmodified", h.lastModified)
		r.Get("/api/sobjects/{object}/{id}", h.retrieveRecord)
		r.Patch("/api/sobjects/{object}/{id}", h.updateRecord)
		r.Delete("/api/sobjects/{object}/{id}", h.deleteRecord)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
