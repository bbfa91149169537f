// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates configuration for the sync
// server and client.
//
// Sources in priority order (later sources override earlier non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetServerConfig] serves cmd/server, [GetClientConfig] serves cmd/client.
package config
