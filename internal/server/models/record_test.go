package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
)

func TestParseRecord(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run("keeps document and timestamps", func(t *testing.T) {
		body := []byte(`{"id":"r1","createdAt":1000,"updatedAt":2000,"village":"Kendupali"}`)
		r, err := ParseRecord(body, now)
		require.NoError(t, err)
		assert.Equal(t, "r1", r.ID)
		assert.Equal(t, "1000", r.CreatedAt)
		assert.Equal(t, "2000", r.UpdatedAt)
		assert.JSONEq(t, string(body), string(r.Data))
	})

	t.Run("defaults missing timestamps", func(t *testing.T) {
		r, err := ParseRecord([]byte(`{"id":"r2"}`), now)
		require.NoError(t, err)
		assert.Equal(t, "1700000000000", r.CreatedAt)
		assert.Equal(t, "1700000000000", r.UpdatedAt)
	})

	t.Run("float timestamps are truncated", func(t *testing.T) {
		r, err := ParseRecord([]byte(`{"id":"r3","createdAt":1.5e3,"updatedAt":"x"}`), now)
		require.Error(t, err, "string timestamp is not a number")
		assert.Nil(t, r)

		r, err = ParseRecord([]byte(`{"id":"r3","createdAt":1.5e3}`), now)
		require.NoError(t, err)
		assert.Equal(t, "1500", r.CreatedAt)
	})

	for _, body := range []string{`not json`, `{}`, `{"id":""}`, `[]`} {
		t.Run("rejects "+body, func(t *testing.T) {
			_, err := ParseRecord([]byte(body), now)
			assert.True(t, errors.Is(err, common.ErrInvalidRecord), "got %v", err)
		})
	}
}
