// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySpec_LimitAndOffset(t *testing.T) {
	tests := []struct {
		name       string
		spec       QuerySpec
		wantLimit  int
		wantOffset int
	}{
		{"defaults", QuerySpec{}, DefaultPageSize, 0},
		{"capped", QuerySpec{PageSize: 5000, Page: 1}, MaxPageSize, MaxPageSize},
		{"explicit", QuerySpec{PageSize: 10, Page: 3}, 10, 30},
		{"negative page", QuerySpec{PageSize: 10, Page: -2}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.spec.Limit())
			assert.Equal(t, tt.wantOffset, tt.spec.Offset())
		})
	}
}

func TestCursor_EncodeParse(t *testing.T) {
	c := Cursor{LastModified: time.Date(2026, 5, 1, 12, 0, 0, 123456789, time.UTC), ID: "0190a1b2-id"}

	back, err := ParseCursor(c.Encode())

	require.NoError(t, err)
	assert.True(t, c.LastModified.Equal(back.LastModified))
	assert.Equal(t, c.ID, back.ID)
}

func TestParseCursor_Invalid(t *testing.T) {
	for _, token := range []string{"", "!!!", "bm8tc2VwYXJhdG9y", "eWVzdGVyZGF5fGlk"} {
		_, err := ParseCursor(token)
		assert.ErrorIs(t, err, ErrInvalidCursor, token)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `O\_Brien`, EscapeLike("O_Brien"))
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\\b`, EscapeLike(`a\b`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}
