package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/server/repositories/records"
)

type failingRepo struct{ err error }

func (f failingRepo) Upsert(context.Context, *models.Record) (*models.Record, error) {
	return nil, f.err
}
func (f failingRepo) List(context.Context) ([]*models.Record, error) { return nil, f.err }

func TestRecordService_SaveAndList(t *testing.T) {
	svc := NewRecordService(records.NewMemoryRepository(), logging.Discard())
	svc.now = func() time.Time { return time.UnixMilli(5000) }
	ctx := context.Background()

	saved, err := svc.Save(ctx, []byte(`{"id":"r1","village":"A"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"r1","village":"A"}`, string(saved))

	_, err = svc.Save(ctx, []byte(`{"id":"r1","village":"B"}`))
	require.NoError(t, err)
	_, err = svc.Save(ctx, []byte(`{"id":"r2"}`))
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.JSONEq(t, `{"id":"r1","village":"B"}`, string(all[0]))
	assert.JSONEq(t, `{"id":"r2"}`, string(all[1]))
}

func TestRecordService_ListEmptyIsNotNil(t *testing.T) {
	svc := NewRecordService(records.NewMemoryRepository(), logging.Discard())
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	b, err := json.Marshal(all)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestRecordService_Errors(t *testing.T) {
	svc := NewRecordService(records.NewMemoryRepository(), logging.Discard())
	_, err := svc.Save(context.Background(), []byte(`{"village":"no id"}`))
	assert.ErrorIs(t, err, common.ErrInvalidRecord)

	boom := errors.New("db down")
	svc = NewRecordService(failingRepo{err: boom}, logging.Discard())
	_, err = svc.Save(context.Background(), []byte(`{"id":"r1"}`))
	assert.ErrorIs(t, err, boom)
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
