// Package models defines the survey record persisted on the device and
// pushed to the server.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/google/uuid"
)

// SyncStatus tracks whether the server has acknowledged the latest local
// version of a record.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// ZoneID names one of the three fixed sampling zones of a field.
type ZoneID string

const (
	ZoneA ZoneID = "A"
	ZoneB ZoneID = "B"
	ZoneC ZoneID = "C"
)

// ZoneIDs lists the zones in the order they are stored.
var ZoneIDs = [3]ZoneID{ZoneA, ZoneB, ZoneC}

var zoneLabels = map[ZoneID]string{
	ZoneA: "Good",
	ZoneB: "Medium",
	ZoneC: "Weak",
}

// ZoneData holds the observations for one sampling zone.
type ZoneData struct {
	ZoneID          ZoneID `json:"zoneId"`
	Label           string `json:"label"`
	CropPhotoURI    string `json:"cropPhotoUri,omitempty"`
	CobPhotoURI     string `json:"cobPhotoUri,omitempty"`
	PlantHeight     string `json:"plantHeight,omitempty"`
	PlantColor      string `json:"plantColor,omitempty"`
	StandDensity    string `json:"standDensity,omitempty"`
	CobSizeObserved string `json:"cobSizeObserved,omitempty"`
	PlantsSampled   string `json:"plantsSampled,omitempty"`
	Completed       bool   `json:"completed"`
}

// PhotoData is a geo-tagged photo reference. URI points at device storage.
type PhotoData struct {
	Type      string   `json:"type"`
	URI       string   `json:"uri"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Filename  string   `json:"filename"`
}

// FieldRecord is one survey of one field. Timestamps are Unix milliseconds.
type FieldRecord struct {
	ID           string     `json:"id"`
	CreatedAt    int64      `json:"createdAt"`
	UpdatedAt    int64      `json:"updatedAt"`
	SyncStatus   SyncStatus `json:"syncStatus"`
	Revision     int64      `json:"revision"`
	CurrentPhase int        `json:"currentPhase"`
	CurrentStep  int        `json:"currentStep"`

	FarmerSelfieURI string `json:"farmerSelfieUri,omitempty"`

	FieldID           string   `json:"fieldId"`
	CollectionDate    string   `json:"collectionDate"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	GPSAccuracy       *float64 `json:"gpsAccuracy,omitempty"`
	District          string   `json:"district"`
	Block             string   `json:"block"`
	Village           string   `json:"village"`
	FieldAreaAcres    string   `json:"fieldAreaAcres"`
	FieldAreaHectares string   `json:"fieldAreaHectares"`

	EntryPhotoURI  string   `json:"entryPhotoUri,omitempty"`
	EntryPhotoLat  *float64 `json:"entryPhotoLat,omitempty"`
	EntryPhotoLng  *float64 `json:"entryPhotoLng,omitempty"`
	CenterPhotoURI string   `json:"centerPhotoUri,omitempty"`
	CenterPhotoLat *float64 `json:"centerPhotoLat,omitempty"`
	CenterPhotoLng *float64 `json:"centerPhotoLng,omitempty"`

	Zones []ZoneData `json:"zones"`

	Variety            string `json:"variety"`
	SeedCompany        string `json:"seedCompany"`
	SeedType           string `json:"seedType"`
	HarvestDate        string `json:"harvestDate"`
	TotalHarvestWeight string `json:"totalHarvestWeight"`
	MoisturePercent    string `json:"moisturePercent"`
	DryWeight          string `json:"dryWeight"`
	YieldKgHa          string `json:"yieldKgHa"`
	YieldQuintalsAcre  string `json:"yieldQuintalsAcre"`

	SowingDate      string `json:"sowingDate"`
	GrowingDays     string `json:"growingDays"`
	BasalFertilizer string `json:"basalFertilizer"`
	TopDressing1    string `json:"topDressing1"`
	TopDressing2    string `json:"topDressing2"`
	OrganicManure   string `json:"organicManure"`

	IrrigationType   string `json:"irrigationType"`
	IrrigationNumber string `json:"irrigationNumber"`
	WaterSource      string `json:"waterSource"`

	MajorPest     string `json:"majorPest"`
	PestSeverity  string `json:"pestSeverity"`
	Disease       string `json:"disease"`
	PesticideUsed string `json:"pesticideUsed"`

	SoilType      string `json:"soilType"`
	SoilPH        string `json:"soilPh"`
	OrganicCarbon string `json:"organicCarbon"`
	NPK           string `json:"npk"`
	PreviousCrop  string `json:"previousCrop"`

	RainfallPattern  string `json:"rainfallPattern"`
	Drought          string `json:"drought"`
	HeatStress       string `json:"heatStress"`
	Lodging          string `json:"lodging"`
	StandQuality     string `json:"standQuality"`
	CobSize          string `json:"cobSize"`
	GrainFillQuality string `json:"grainFillQuality"`

	HarvestPhotoURI   string `json:"harvestPhotoUri,omitempty"`
	WeighmentPhotoURI string `json:"weighmentPhotoUri,omitempty"`
	FarmerPhotoURI    string `json:"farmerPhotoUri,omitempty"`

	FarmerName     string `json:"farmerName"`
	FarmerPhone    string `json:"farmerPhone"`
	LandOwnership  string `json:"landOwnership"`
	Consent        string `json:"consent"`
	CollectorName  string `json:"collectorName"`
	CollectorPhone string `json:"collectorPhone"`
	TimeSpent      string `json:"timeSpent"`

	Photos []PhotoData `json:"photos"`
}

// NewRecord returns an empty pending record created at now, with a fresh id,
// today's collection date and the three zones in A/B/C order.
func NewRecord(now time.Time) *FieldRecord {
	ms := now.UnixMilli()
	r := &FieldRecord{
		ID:             uuid.NewString(),
		CreatedAt:      ms,
		UpdatedAt:      ms,
		SyncStatus:     SyncPending,
		CollectionDate: now.Format(time.DateOnly),
		Zones:          make([]ZoneData, 0, len(ZoneIDs)),
		Photos:         []PhotoData{},
	}
	for _, id := range ZoneIDs {
		r.Zones = append(r.Zones, ZoneData{ZoneID: id, Label: zoneLabels[id]})
	}
	return r
}

// Validate checks the structural invariants every stored record must hold.
func (r *FieldRecord) Validate() error {
	if err := r.ValidateLayout(); err != nil {
		return err
	}
	if r.UpdatedAt < r.CreatedAt {
		return fmt.Errorf("%w: updatedAt %d before createdAt %d", common.ErrInvalidRecord, r.UpdatedAt, r.CreatedAt)
	}
	return nil
}

// ValidateLayout checks the id and the A/B/C zone layout, leaving the
// timestamps alone.
func (r *FieldRecord) ValidateLayout() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", common.ErrInvalidRecord)
	}
	if len(r.Zones) != len(ZoneIDs) {
		return fmt.Errorf("%w: expected %d zones, got %d", common.ErrInvalidRecord, len(ZoneIDs), len(r.Zones))
	}
	for i, id := range ZoneIDs {
		if r.Zones[i].ZoneID != id {
			return fmt.Errorf("%w: zone %d is %q, want %q", common.ErrInvalidRecord, i, r.Zones[i].ZoneID, id)
		}
	}
	return nil
}

// Zone returns the zone with the given id, or nil.
func (r *FieldRecord) Zone(id ZoneID) *ZoneData {
	for i := range r.Zones {
		if r.Zones[i].ZoneID == id {
			return &r.Zones[i]
		}
	}
	return nil
}

// CompletedZones counts zones marked completed.
func (r *FieldRecord) CompletedZones() int {
	n := 0
	for _, z := range r.Zones {
		if z.Completed {
			n++
		}
	}
	return n
}

// IsSynced reports whether the server holds the latest local version.
func (r *FieldRecord) IsSynced() bool {
	return r.SyncStatus == SyncSynced
}

// Clone returns a deep copy, so callers can hand snapshots to background
// work without sharing slices.
func (r *FieldRecord) Clone() *FieldRecord {
	c := *r
	c.Zones = append([]ZoneData(nil), r.Zones...)
	c.Photos = make([]PhotoData, len(r.Photos))
	for i, p := range r.Photos {
		c.Photos[i] = p
		c.Photos[i].Latitude = cloneFloat(p.Latitude)
		c.Photos[i].Longitude = cloneFloat(p.Longitude)
	}
	c.Latitude = cloneFloat(r.Latitude)
	c.Longitude = cloneFloat(r.Longitude)
	c.GPSAccuracy = cloneFloat(r.GPSAccuracy)
	c.EntryPhotoLat = cloneFloat(r.EntryPhotoLat)
	c.EntryPhotoLng = cloneFloat(r.EntryPhotoLng)
	c.CenterPhotoLat = cloneFloat(r.CenterPhotoLat)
	c.CenterPhotoLng = cloneFloat(r.CenterPhotoLng)
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
