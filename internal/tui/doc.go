// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the client: a contacts explorer
// working on the local soup and a queue of submitted orders.
//
// Every edit is written locally first and reaches the server on the next
// sync, started with "s" or by the background job.
package tui
