package models

import (
	"fmt"
	"sort"
)

// textFields maps the JSON name of every free-text survey field to its
// storage. Identity, lifecycle and photo fields are not editable this way.
func (r *FieldRecord) textFields() map[string]*string {
	return map[string]*string{
		"fieldId":            &r.FieldID,
		"collectionDate":     &r.CollectionDate,
		"district":           &r.District,
		"block":              &r.Block,
		"village":            &r.Village,
		"fieldAreaAcres":     &r.FieldAreaAcres,
		"fieldAreaHectares":  &r.FieldAreaHectares,
		"variety":            &r.Variety,
		"seedCompany":        &r.SeedCompany,
		"seedType":           &r.SeedType,
		"harvestDate":        &r.HarvestDate,
		"totalHarvestWeight": &r.TotalHarvestWeight,
		"moisturePercent":    &r.MoisturePercent,
		"dryWeight":          &r.DryWeight,
		"yieldKgHa":          &r.YieldKgHa,
		"yieldQuintalsAcre":  &r.YieldQuintalsAcre,
		"sowingDate":         &r.SowingDate,
		"growingDays":        &r.GrowingDays,
		"basalFertilizer":    &r.BasalFertilizer,
		"topDressing1":       &r.TopDressing1,
		"topDressing2":       &r.TopDressing2,
		"organicManure":      &r.OrganicManure,
		"irrigationType":     &r.IrrigationType,
		"irrigationNumber":   &r.IrrigationNumber,
		"waterSource":        &r.WaterSource,
		"majorPest":          &r.MajorPest,
		"pestSeverity":       &r.PestSeverity,
		"disease":            &r.Disease,
		"pesticideUsed":      &r.PesticideUsed,
		"soilType":           &r.SoilType,
		"soilPh":             &r.SoilPH,
		"organicCarbon":      &r.OrganicCarbon,
		"npk":                &r.NPK,
		"previousCrop":       &r.PreviousCrop,
		"rainfallPattern":    &r.RainfallPattern,
		"drought":            &r.Drought,
		"heatStress":         &r.HeatStress,
		"lodging":            &r.Lodging,
		"standQuality":       &r.StandQuality,
		"cobSize":            &r.CobSize,
		"grainFillQuality":   &r.GrainFillQuality,
		"farmerName":         &r.FarmerName,
		"farmerPhone":        &r.FarmerPhone,
		"landOwnership":      &r.LandOwnership,
		"consent":            &r.Consent,
		"collectorName":      &r.CollectorName,
		"collectorPhone":     &r.CollectorPhone,
		"timeSpent":          &r.TimeSpent,
	}
}

func (z *ZoneData) textFields() map[string]*string {
	return map[string]*string{
		"plantHeight":     &z.PlantHeight,
		"plantColor":      &z.PlantColor,
		"standDensity":    &z.StandDensity,
		"cobSizeObserved": &z.CobSizeObserved,
		"plantsSampled":   &z.PlantsSampled,
	}
}

// SetField assigns a free-text field by its JSON name.
func (r *FieldRecord) SetField(name, value string) error {
	p, ok := r.textFields()[name]
	if !ok {
		return fmt.Errorf("unknown record field %q", name)
	}
	*p = value
	return nil
}

// Field returns a free-text field by its JSON name.
func (r *FieldRecord) Field(name string) (string, bool) {
	p, ok := r.textFields()[name]
	if !ok {
		return "", false
	}
	return *p, true
}

// SetField assigns a zone observation by its JSON name.
func (z *ZoneData) SetField(name, value string) error {
	p, ok := z.textFields()[name]
	if !ok {
		return fmt.Errorf("unknown zone field %q", name)
	}
	*p = value
	return nil
}

// FieldNames lists the editable record fields in lexical order.
func FieldNames() []string {
	var r FieldRecord
	names := make([]string, 0, 48)
	for name := range r.textFields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
