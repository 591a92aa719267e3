package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const hectaresPerAcre = 0.404686

// ApplyField sets a free-text field and refreshes the values derived from
// it: hectares from acres, dry weight and yields from harvest weight and
// moisture, growing days from sowing and harvest dates.
func (r *FieldRecord) ApplyField(name, value string) error {
	if err := r.SetField(name, value); err != nil {
		return err
	}

	switch name {
	case "fieldAreaAcres":
		if acres, ok := parseFloat(value); ok {
			r.FieldAreaHectares = fixed2(acres * hectaresPerAcre)
		} else {
			r.FieldAreaHectares = ""
		}
		r.deriveYield()
	case "totalHarvestWeight", "moisturePercent":
		r.deriveYield()
	case "sowingDate", "harvestDate":
		r.deriveGrowingDays()
	}
	return nil
}

func (r *FieldRecord) deriveYield() {
	weight, ok1 := parseFloat(r.TotalHarvestWeight)
	moisture, ok2 := parseFloat(r.MoisturePercent)
	if !ok1 || !ok2 {
		return
	}
	dry := weight * (1 - moisture/100)
	r.DryWeight = fixed2(dry)

	hectares, ok := parseFloat(r.FieldAreaHectares)
	if !ok || hectares <= 0 {
		return
	}
	r.YieldKgHa = fixed2(dry / hectares)

	if acres, ok := parseFloat(r.FieldAreaAcres); ok && acres > 0 {
		r.YieldQuintalsAcre = fixed2(dry / 100 / acres)
	}
}

func (r *FieldRecord) deriveGrowingDays() {
	sow, err1 := time.Parse(time.DateOnly, r.SowingDate)
	harvest, err2 := time.Parse(time.DateOnly, r.HarvestDate)
	if err1 != nil || err2 != nil {
		return
	}
	days := int(math.Round(harvest.Sub(sow).Hours() / 24))
	if days > 0 {
		r.GrowingDays = strconv.Itoa(days)
	} else {
		r.GrowingDays = ""
	}
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func fixed2(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
