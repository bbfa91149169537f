// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-soup-sync/internal/utils"
)

// CheckHTTPMethod is meant for [chi.Mux.MethodNotAllowed]. A path that
// exists under another method is answered with 404 instead of 405, so the
// API does not reveal which routes exist. Requests the router can serve
// after all are passed back to it.
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	}
}
