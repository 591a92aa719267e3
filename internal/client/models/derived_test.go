package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyField_AcresToHectares(t *testing.T) {
	r := NewRecord(time.Now())

	require.NoError(t, r.ApplyField("fieldAreaAcres", "2.5"))
	assert.Equal(t, "2.5", r.FieldAreaAcres)
	assert.Equal(t, "1.01", r.FieldAreaHectares)

	require.NoError(t, r.ApplyField("fieldAreaAcres", "abc"))
	assert.Empty(t, r.FieldAreaHectares)
}

func TestApplyField_DryWeightAndYield(t *testing.T) {
	r := NewRecord(time.Now())
	require.NoError(t, r.ApplyField("fieldAreaAcres", "1"))
	require.NoError(t, r.ApplyField("totalHarvestWeight", "100"))
	assert.Empty(t, r.DryWeight, "needs moisture too")

	require.NoError(t, r.ApplyField("moisturePercent", "20"))
	assert.Equal(t, "80.00", r.DryWeight)
	assert.Equal(t, "197.69", r.YieldKgHa) // 80 / 0.40 ha
	assert.Equal(t, "0.80", r.YieldQuintalsAcre)
}

func TestApplyField_GrowingDays(t *testing.T) {
	r := NewRecord(time.Now())

	require.NoError(t, r.ApplyField("sowingDate", "2025-06-15"))
	assert.Empty(t, r.GrowingDays)

	require.NoError(t, r.ApplyField("harvestDate", "2025-10-13"))
	assert.Equal(t, "120", r.GrowingDays)

	require.NoError(t, r.ApplyField("harvestDate", "2025-06-01"))
	assert.Empty(t, r.GrowingDays)
}

func TestApplyField_UnknownField(t *testing.T) {
	r := NewRecord(time.Now())
	require.Error(t, r.ApplyField("password", "x"))
}
