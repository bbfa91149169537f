// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the sync server.
//
// It exposes the record API under /api/sobjects and the version endpoints.
// Tracing, access logging, compression and bearer authentication are
// handled here before requests reach the service layer.
package http
