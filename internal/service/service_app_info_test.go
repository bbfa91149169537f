// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/models"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Version(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.App
		build   models.AppBuildInfo
		want    string
		wantErr error
	}{
		{"config wins", config.App{Version: "1.0.0"}, models.NewAppBuildInfo("0.9.0", "", ""), "1.0.0", nil},
		{"build fallback", config.App{}, models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc"), "0.9.0", nil},
		{"none", config.App{}, models.AppBuildInfo{}, "", ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(tt.cfg, tt.build, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.GetAppVersion(context.Background()))
		})
	}
}

// ─────────────────────────────────────────────
// GetAppInfo
// ─────────────────────────────────────────────

func TestGetAppInfo_ListsKnownObjects(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.2.3"}, models.NewAppBuildInfo("", "2026-10-01", "deadbeef"), logger.Nop())
	require.NoError(t, err)

	info := svc.GetAppInfo(context.Background())

	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "2026-10-01", info.BuildDate)
	assert.Equal(t, "deadbeef", info.BuildCommit)
	assert.Contains(t, info.Objects, models.ContactObject)
	assert.Contains(t, info.Objects, models.QuoteLineItemObject)
	assert.Len(t, info.Objects, len(models.Schemas()))
}

func TestGetAppInfo_ReturnsCopy(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	first := svc.GetAppInfo(context.Background())
	first.Objects[0] = "changed"

	assert.NotEqual(t, "changed", svc.GetAppInfo(context.Background()).Objects[0])
}
