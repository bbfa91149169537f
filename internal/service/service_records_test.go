// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/mock"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// newTestRecordSvc wires recordService to a mocked repository and a
// predictable id sequence.
func newTestRecordSvc(t *testing.T) (RecordService, *mock.MockRecordRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRecordRepository(ctrl)
	return NewRecordService(repo, utils.NewSequenceGenerator("rec"), logger.Nop()), repo
}

func serverRecord(id string, modified time.Time, fields models.Fields) *models.Record {
	rec := models.NewRecord(models.ContactObject, "", fields)
	rec.ID = id
	rec.LastModifiedDate = modified
	return rec
}

// ── Query ────────────────────────────────────────────────────────────────────

func TestRecordService_Query_Paging(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	page := []*models.Record{
		serverRecord("a", base, models.Fields{"LastName": "A", "Title": "x"}),
		serverRecord("b", base.Add(time.Second), models.Fields{"LastName": "B"}),
		serverRecord("c", base.Add(2*time.Second), models.Fields{"LastName": "C"}),
	}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(5, nil)
	repo.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q models.RecordQuery) ([]*models.Record, error) {
			assert.Equal(t, models.ContactObject, q.ObjectType)
			assert.Equal(t, 3, q.Limit, "one more than the page")
			assert.Nil(t, q.After)
			return page, nil
		},
	)

	resp, err := svc.Query(testContext(), QueryRequest{
		Object: models.ContactObject,
		Fields: []string{"LastName"},
		Limit:  2,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalSize)
	assert.False(t, resp.Done)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "a", resp.Records[0][models.FieldID])
	assert.NotContains(t, resp.Records[0], "Title", "projected away")
	assert.Equal(t, map[string]any{"type": models.ContactObject}, resp.Records[0][models.FieldAttributes])

	cursor, err := models.ParseCursor(resp.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, "b", cursor.ID)
	assert.True(t, cursor.LastModified.Equal(base.Add(time.Second)))
}

func TestRecordService_Query_LastPage(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	after := models.Cursor{LastModified: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), ID: "b"}

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q models.RecordQuery) ([]*models.Record, error) {
			require.NotNil(t, q.After)
			assert.Equal(t, "b", q.After.ID)
			assert.Equal(t, models.DefaultPageSize+1, q.Limit)
			return []*models.Record{serverRecord("c", time.Now(), nil)}, nil
		},
	)

	resp, err := svc.Query(testContext(), QueryRequest{Object: models.ContactObject, Cursor: after.Encode()})

	require.NoError(t, err)
	assert.True(t, resp.Done)
	assert.Empty(t, resp.NextCursor)
	assert.Len(t, resp.Records, 1)
}

func TestRecordService_Query_BadCursor(t *testing.T) {
	svc, _ := newTestRecordSvc(t)

	_, err := svc.Query(testContext(), QueryRequest{Object: models.ContactObject, Cursor: "%%%"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, models.ErrInvalidCursor)
}

func TestPageLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, models.DefaultPageSize},
		{-5, models.DefaultPageSize},
		{10, 10},
		{models.MaxPageSize + 1, models.MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, pageLimit(tt.in))
		})
	}
}

// ── Retrieve ─────────────────────────────────────────────────────────────────

func TestRecordService_Retrieve_NotFound(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	repo.EXPECT().Get(gomock.Any(), models.ContactObject, "x").Return(nil, store.ErrRecordNotFound)

	_, err := svc.Retrieve(testContext(), models.ContactObject, "x", nil)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestRecordService_Create(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	stamp := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	ctx := utils.WithClientID(testContext(), "ipad-7")

	repo.EXPECT().GetByExternalID(gomock.Any(), models.ContactObject, "ext-1").Return(nil, store.ErrRecordNotFound)
	repo.EXPECT().Insert(gomock.Any(), gomock.Any(), "ipad-7").DoAndReturn(
		func(_ context.Context, rec *models.Record, _ string) (*models.Record, error) {
			assert.Equal(t, "rec-1", rec.ID)
			assert.Equal(t, "ext-1", rec.ExternalID)
			assert.Equal(t, models.Fields{"LastName": "Doe"}, rec.Fields, "bookkeeping stripped")
			saved := rec.Clone()
			saved.LastModifiedDate = stamp
			return saved, nil
		},
	)

	res, err := svc.Create(ctx, models.RecordRequest{
		Object: models.ContactObject,
		Fields: models.Fields{"LastName": "Doe", models.FieldExternalID: "ext-1", models.FieldLocal: true},
	})

	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{ID: "rec-1", LastModifiedDate: stamp}, res)
}

func TestRecordService_Create_Replayed(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	stamp := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().GetByExternalID(gomock.Any(), models.ContactObject, "ext-1").
		Return(serverRecord("first", stamp, nil), nil)

	res, err := svc.Create(testContext(), models.RecordRequest{
		Object: models.ContactObject,
		Fields: models.Fields{"LastName": "Doe", models.FieldExternalID: "ext-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "first", res.ID, "retry returns the stored record")
}

func TestRecordService_Create_LostRace(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	stamp := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		repo.EXPECT().GetByExternalID(gomock.Any(), models.ContactObject, "ext-1").Return(nil, store.ErrRecordNotFound),
		repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, store.ErrDuplicateExternalID),
		repo.EXPECT().GetByExternalID(gomock.Any(), models.ContactObject, "ext-1").Return(serverRecord("winner", stamp, nil), nil),
	)

	res, err := svc.Create(testContext(), models.RecordRequest{
		Object: models.ContactObject,
		Fields: models.Fields{"LastName": "Doe", models.FieldExternalID: "ext-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "winner", res.ID)
}

func TestRecordService_Create_MistypedExternalID(t *testing.T) {
	svc, _ := newTestRecordSvc(t)

	_, err := svc.Create(testContext(), models.RecordRequest{
		Object: models.ContactObject,
		Fields: models.Fields{models.FieldExternalID: 42.0},
	})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, models.ErrTypeMismatch)
}

// ── Update / Delete / LastModified ───────────────────────────────────────────

func TestRecordService_Update(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	stamp := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().Update(gomock.Any(), models.ContactObject, "001", models.Fields{"Title": "CTO"}).
		Return(serverRecord("001", stamp, nil), nil)

	res, err := svc.Update(testContext(), models.RecordRequest{
		Object: models.ContactObject,
		ID:     "001",
		Fields: models.Fields{"Title": "CTO", models.FieldID: "ignored"},
	})

	require.NoError(t, err)
	assert.Equal(t, stamp, res.LastModifiedDate)
}

func TestRecordService_NotFoundMapping(t *testing.T) {
	svc, repo := newTestRecordSvc(t)

	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, store.ErrRecordNotFound)
	repo.EXPECT().Delete(gomock.Any(), models.ContactObject, "gone").Return(store.ErrRecordNotFound)

	_, err := svc.Update(testContext(), models.RecordRequest{Object: models.ContactObject, ID: "gone", Fields: models.Fields{"a": 1}})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = svc.Delete(testContext(), models.ContactObject, "gone")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_Delete_PassesOtherErrors(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	boom := errors.New("connection reset")
	repo.EXPECT().Delete(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

	err := svc.Delete(testContext(), models.ContactObject, "001")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_LastModified(t *testing.T) {
	svc, repo := newTestRecordSvc(t)
	stamps := map[string]time.Time{"001": time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)}

	repo.EXPECT().LastModified(gomock.Any(), models.ContactObject, []string{"001", "002"}).Return(stamps, nil)

	resp, err := svc.LastModified(testContext(), models.ContactObject, models.LastModifiedRequest{IDs: []string{"001", "002"}})

	require.NoError(t, err)
	assert.Equal(t, stamps, resp.Records)
}
