package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_Defaults(t *testing.T) {
	now := time.Date(2025, 10, 3, 9, 30, 0, 0, time.UTC)
	r := NewRecord(now)

	require.NotEmpty(t, r.ID)
	assert.Equal(t, now.UnixMilli(), r.CreatedAt)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, SyncPending, r.SyncStatus)
	assert.Equal(t, "2025-10-03", r.CollectionDate)
	require.Len(t, r.Zones, 3)
	assert.Equal(t, ZoneData{ZoneID: ZoneA, Label: "Good"}, r.Zones[0])
	assert.Equal(t, ZoneData{ZoneID: ZoneB, Label: "Medium"}, r.Zones[1])
	assert.Equal(t, ZoneData{ZoneID: ZoneC, Label: "Weak"}, r.Zones[2])
	require.NoError(t, r.Validate())
}

func TestNewRecord_UniqueIDs(t *testing.T) {
	now := time.Now()
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewRecord(now).ID
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestValidate(t *testing.T) {
	base := func() *FieldRecord { return NewRecord(time.UnixMilli(1_000)) }

	tests := []struct {
		name   string
		mutate func(r *FieldRecord)
	}{
		{"empty id", func(r *FieldRecord) { r.ID = "" }},
		{"updated before created", func(r *FieldRecord) { r.UpdatedAt = r.CreatedAt - 1 }},
		{"missing zone", func(r *FieldRecord) { r.Zones = r.Zones[:2] }},
		{"extra zone", func(r *FieldRecord) { r.Zones = append(r.Zones, ZoneData{ZoneID: "D"}) }},
		{"zones out of order", func(r *FieldRecord) { r.Zones[0], r.Zones[1] = r.Zones[1], r.Zones[0] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base()
			tt.mutate(r)
			require.ErrorIs(t, r.Validate(), common.ErrInvalidRecord)
		})
	}
}

func TestValidateLayout_IgnoresTimestamps(t *testing.T) {
	r := NewRecord(time.UnixMilli(1_000))
	r.UpdatedAt = 0
	require.NoError(t, r.ValidateLayout())
	require.ErrorIs(t, r.Validate(), common.ErrInvalidRecord)

	r.Zones = r.Zones[:1]
	require.ErrorIs(t, r.ValidateLayout(), common.ErrInvalidRecord)
}

func TestFieldRecord_JSONUsesWireNames(t *testing.T) {
	r := NewRecord(time.UnixMilli(1_700_000_000_000))
	r.ID = "r1"
	r.FieldID = "F1"
	r.SoilPH = "6.5"

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "r1", raw["id"])
	assert.Equal(t, "F1", raw["fieldId"])
	assert.Equal(t, "6.5", raw["soilPh"])
	assert.Equal(t, "pending", raw["syncStatus"])
	assert.EqualValues(t, 1_700_000_000_000, raw["createdAt"])
	_, hasLat := raw["latitude"]
	assert.False(t, hasLat, "unset optional coordinates are omitted")
}

func TestClone_IsDeep(t *testing.T) {
	lat := 20.3
	r := NewRecord(time.Now())
	r.Latitude = &lat
	r.Photos = append(r.Photos, PhotoData{Type: "entry", URI: "file:///a.jpg", Latitude: &lat})

	c := r.Clone()
	if diff := cmp.Diff(r, c); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Zones[0].PlantHeight = "150"
	*c.Latitude = 1
	*c.Photos[0].Latitude = 2

	assert.Empty(t, r.Zones[0].PlantHeight)
	assert.InDelta(t, 20.3, *r.Latitude, 1e-9)
	assert.InDelta(t, 20.3, *r.Photos[0].Latitude, 1e-9)
}

func TestZoneAndCompleted(t *testing.T) {
	r := NewRecord(time.Now())
	require.NotNil(t, r.Zone(ZoneB))
	assert.Nil(t, r.Zone("Z"))

	r.Zone(ZoneB).Completed = true
	assert.Equal(t, 1, r.CompletedZones())
}

func TestSetField(t *testing.T) {
	r := NewRecord(time.Now())

	require.NoError(t, r.SetField("district", "Khordha"))
	assert.Equal(t, "Khordha", r.District)

	v, ok := r.Field("district")
	require.True(t, ok)
	assert.Equal(t, "Khordha", v)

	require.Error(t, r.SetField("id", "hijack"))
	require.Error(t, r.SetField("nope", "x"))

	require.NoError(t, r.Zone(ZoneA).SetField("plantHeight", "180"))
	assert.Equal(t, "180", r.Zones[0].PlantHeight)
	require.Error(t, r.Zone(ZoneA).SetField("district", "x"))

	assert.Contains(t, FieldNames(), "farmerName")
	assert.NotContains(t, FieldNames(), "id")
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage(" HI ")
	require.NoError(t, err)
	assert.Equal(t, Hindi, l)

	_, err = ParseLanguage("fr")
	require.ErrorIs(t, err, common.ErrUnsupportedLanguage)
}
