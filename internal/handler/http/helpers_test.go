// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/service"
	svcmock "github.com/MKhiriev/go-soup-sync/internal/service/mock"
	"github.com/MKhiriev/go-soup-sync/models"
)

const (
	validToken = "good-token"
	clientID   = "ipad-7"
)

type testDeps struct {
	records *svcmock.MockRecordService
	auth    *svcmock.MockAuthService
	info    *svcmock.MockAppInfoService
}

// newTestHandler builds a Handler over gomock services. The auth service
// accepts validToken for clientID and rejects everything else.
func newTestHandler(t *testing.T) (*Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		records: svcmock.NewMockRecordService(ctrl),
		auth:    svcmock.NewMockAuthService(ctrl),
		info:    svcmock.NewMockAppInfoService(ctrl),
	}
	deps.auth.EXPECT().ParseToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, token string) (models.Token, error) {
			if token == validToken {
				return models.Token{ClientID: clientID}, nil
			}
			return models.Token{}, errors.New("signature is invalid")
		}).AnyTimes()

	h := NewHandler(&service.Services{
		AuthService:    deps.auth,
		RecordService:  deps.records,
		AppInfoService: deps.info,
	}, logger.Nop())
	return h, deps
}

// injectNopLogger puts a nop logger on the request context.
func injectNopLogger(r *http.Request) *http.Request {
	return r.WithContext(logger.Nop().WithContext(r.Context()))
}

// serve runs one request through the full router.
func serve(h *Handler, method, target string, body io.Reader, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}
