package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/voice"
	"github.com/dmitrijs2005/fieldkeeper/internal/common"
	"github.com/dmitrijs2005/fieldkeeper/internal/formatx"
)

var fieldFormatters = map[string]func(string) string{
	"farmerPhone":        formatx.Phone,
	"collectorPhone":     formatx.Phone,
	"collectionDate":     formatx.Date,
	"sowingDate":         formatx.Date,
	"harvestDate":        formatx.Date,
	"npk":                formatx.NPK,
	"fieldAreaAcres":     numeric,
	"totalHarvestWeight": numeric,
	"moisturePercent":    numeric,
	"soilPh":             numeric,
	"organicCarbon":      numeric,
	"plantHeight":        numeric,
}

func numeric(s string) string { return formatx.Numeric(s, 2) }

func formatField(name, value string) string {
	if f, ok := fieldFormatters[name]; ok {
		return f(value)
	}
	return strings.TrimSpace(value)
}

// New starts a fresh record and saves it right away so it shows up as
// pending.
func (a *App) New(ctx context.Context) error {
	rec := models.NewRecord(time.Now())
	if selfie, ok := a.prefs.Selfie(ctx); ok {
		rec.FarmerSelfieURI = selfie
	}
	if err := a.records.Save(ctx, rec); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Created record", rec.ID)
	a.instruct(instrNewRecord)
	return nil
}

// List prints one line per stored record, newest first.
func (a *App) List(ctx context.Context) error {
	records := a.records.List(ctx)
	if len(records) == 0 {
		printlnFn("No records yet")
		return nil
	}
	for _, r := range records {
		printlnFn(summary(&r))
	}
	a.instruct(instrRecords)
	return nil
}

func summary(r *models.FieldRecord) string {
	name := r.FarmerName
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s  %-8s  %s  %s  zones %d/3  %s",
		shortID(r.ID), r.SyncStatus, r.CollectionDate, name, r.CompletedZones(),
		time.UnixMilli(r.UpdatedAt).Format(time.DateTime))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Show prints every non-empty field of one record.
func (a *App) Show(ctx context.Context, id string) error {
	rec, err := a.find(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	printlnFn("ID:", rec.ID)
	printlnFn("Status:", rec.SyncStatus, "revision", rec.Revision)
	printlnFn("Created:", time.UnixMilli(rec.CreatedAt).Format(time.DateTime))
	printlnFn("Updated:", time.UnixMilli(rec.UpdatedAt).Format(time.DateTime))
	if rec.FarmerSelfieURI != "" {
		printlnFn("Selfie:", rec.FarmerSelfieURI)
	}
	for _, name := range models.FieldNames() {
		if v, _ := rec.Field(name); v != "" {
			printlnFn(fmt.Sprintf("  %s: %s", name, v))
		}
	}
	for _, z := range rec.Zones {
		done := "open"
		if z.Completed {
			done = "done"
		}
		printlnFn(fmt.Sprintf("Zone %s (%s) %s: height=%s color=%s density=%s cob=%s sampled=%s",
			z.ZoneID, z.Label, done, z.PlantHeight, z.PlantColor, z.StandDensity, z.CobSizeObserved, z.PlantsSampled))
	}
	return nil
}

// Set edits one field and saves the record. Zone fields are addressed as
// "A.plantHeight"; "A.completed" takes yes/no.
func (a *App) Set(ctx context.Context, id, field, value string) error {
	rec, err := a.find(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if err := setField(rec, field, value); err != nil {
		printlnFn("Error:", err)
		return err
	}

	if err := a.records.Save(ctx, rec); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Saved", shortID(rec.ID))
	a.instruct(instrSaved)
	return nil
}

func setField(rec *models.FieldRecord, field, value string) error {
	zoneName, name, isZone := strings.Cut(field, ".")
	if !isZone {
		return rec.ApplyField(field, formatField(field, value))
	}

	zone := rec.Zone(models.ZoneID(strings.ToUpper(zoneName)))
	if zone == nil {
		return fmt.Errorf("unknown zone %q", zoneName)
	}
	if name == "completed" {
		done, err := parseYesNo(value)
		if err != nil {
			return err
		}
		zone.Completed = done
		return nil
	}
	return zone.SetField(name, formatField(name, value))
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected yes or no, got %q", s)
	}
	return b, nil
}

// Voice parses a dictated transcript in the current language and applies
// the recognized values to the record and zone.
func (a *App) Voice(ctx context.Context, id, zone, transcript string) error {
	rec, err := a.find(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	res := voice.Parse(transcript, a.language())
	if res.Empty() {
		printlnFn("Nothing recognized")
		return nil
	}
	if err := res.Apply(rec, models.ZoneID(strings.ToUpper(zone))); err != nil {
		printlnFn("Error:", err)
		return err
	}
	if err := a.records.Save(ctx, rec); err != nil {
		printlnFn("Error:", err)
		return err
	}

	for name, v := range res.Fields {
		printlnFn(fmt.Sprintf("  %s = %s", name, v))
	}
	for name, v := range res.Zone {
		printlnFn(fmt.Sprintf("  %s.%s = %s", strings.ToUpper(zone), name, v))
	}
	a.instruct(instrZone)
	return nil
}

// Say speaks arbitrary text in the current language.
func (a *App) Say(ctx context.Context, text string) error {
	if !a.speech.Enabled() {
		printlnFn("Voice instructions are off")
		return nil
	}
	a.speak(text)
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	a.speech.Stop()
	return nil
}

// Sync runs one pass in the foreground, prints its outcome and refreshes
// the connectivity status.
func (a *App) Sync(ctx context.Context) error {
	r := a.syncer.SyncAll(ctx)
	printlnFn(fmt.Sprintf("Sync: %d attempted, %d synced, %d failed, %d edited meanwhile",
		r.Attempted, r.Synced, r.Failed, r.Superseded))
	a.checkOnline(ctx)
	return nil
}

func (a *App) Pending(ctx context.Context) error {
	printlnFn("Pending records:", a.records.PendingCount(ctx))
	return nil
}

// Lang switches the language used for voice instructions and dictation.
func (a *App) Lang(ctx context.Context, code string) error {
	lang, err := models.ParseLanguage(code)
	if err != nil {
		printlnFn("Unsupported language:", code, "(use en, hi or od)")
		return err
	}
	if err := a.prefs.SetLanguage(ctx, lang); err != nil {
		printlnFn("Error:", err)
		return err
	}

	a.mu.Lock()
	a.lang = lang
	a.mu.Unlock()

	printlnFn("Language set to", lang)
	return nil
}

func (a *App) VoiceOn(ctx context.Context) error  { return a.setVoice(ctx, true) }
func (a *App) VoiceOff(ctx context.Context) error { return a.setVoice(ctx, false) }

func (a *App) setVoice(ctx context.Context, enabled bool) error {
	if err := a.prefs.SetVoiceEnabled(ctx, enabled); err != nil {
		printlnFn("Error:", err)
		return err
	}
	a.speech.SetEnabled(enabled)
	if enabled {
		printlnFn("Voice instructions on")
	} else {
		printlnFn("Voice instructions off")
	}
	return nil
}

// Selfie remembers the collector's selfie; new records start with it.
func (a *App) Selfie(ctx context.Context, uri string) error {
	if err := a.prefs.SetSelfie(ctx, uri); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Selfie saved")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	rec, err := a.find(ctx, id)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}
	if err := a.records.Delete(ctx, rec.ID); err != nil {
		printlnFn("Error:", err)
		return err
	}
	printlnFn("Deleted", shortID(rec.ID))
	return nil
}

var errAmbiguousID = errors.New("ambiguous record id")

// find looks a record up by full id, then by unique id prefix.
func (a *App) find(ctx context.Context, id string) (*models.FieldRecord, error) {
	rec, err := a.records.Get(ctx, id)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, common.ErrNotFound) || id == "" {
		return nil, err
	}

	var match *models.FieldRecord
	for _, r := range a.records.GetAll(ctx) {
		if !strings.HasPrefix(r.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", errAmbiguousID, id)
		}
		match = &r
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}
