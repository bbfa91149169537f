// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/rs/zerolog"
)

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}
