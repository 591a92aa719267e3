// Package voice extracts survey fields from a speech transcript with a
// per-language keyword table. A phrase like "village is Kendupali" sets the
// village; zone observations go to the zone being captured.
package voice

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/formatx"
)

type target struct {
	field string
	zone  bool
}

type mapping struct {
	keys   []string
	target target
	format func(string) string
}

func recordField(name string) target { return target{field: name} }
func zoneField(name string) target   { return target{field: name, zone: true} }

func stripPercent(s string) string {
	return formatx.Numeric(strings.ReplaceAll(s, "%", ""), 2)
}

func numeric(s string) string { return formatx.Numeric(s, 2) }

var mappings = map[models.Language][]mapping{
	models.English: {
		{keys: []string{"field id", "field identification", "id"}, target: recordField("fieldId")},
		{keys: []string{"district", "in district"}, target: recordField("district")},
		{keys: []string{"block"}, target: recordField("block")},
		{keys: []string{"village"}, target: recordField("village")},
		{keys: []string{"area", "acres", "field area"}, target: recordField("fieldAreaAcres"), format: numeric},
		{keys: []string{"farmer name", "name"}, target: recordField("farmerName")},
		{keys: []string{"phone", "mobile", "number"}, target: recordField("farmerPhone"), format: formatx.Phone},
		{keys: []string{"collector name"}, target: recordField("collectorName")},
		{keys: []string{"collector phone"}, target: recordField("collectorPhone"), format: formatx.Phone},
		{keys: []string{"variety", "seed variety"}, target: recordField("variety")},
		{keys: []string{"seed company"}, target: recordField("seedCompany")},
		{keys: []string{"seed type"}, target: recordField("seedType")},
		{keys: []string{"moisture"}, target: recordField("moisturePercent"), format: stripPercent},
		{keys: []string{"harvest weight", "total weight"}, target: recordField("totalHarvestWeight"), format: numeric},
		{keys: []string{"plant height", "height"}, target: zoneField("plantHeight")},
		{keys: []string{"plant color", "color"}, target: zoneField("plantColor")},
	},
	models.Hindi: {
		{keys: []string{"जिला", "जिलें", "डिसट्रिक्ट"}, target: recordField("district")},
		{keys: []string{"ब्लॉक", "प्रखंड"}, target: recordField("block")},
		{keys: []string{"गांव", "ग्राम", "विलेज"}, target: recordField("village")},
		{keys: []string{"क्षेत्रफल", "एकड़", "एरिया", "क्षेत्र"}, target: recordField("fieldAreaAcres")},
		{keys: []string{"किसान का नाम", "नाम", "किसान", "नाम है"}, target: recordField("farmerName")},
		{keys: []string{"फोन नंबर", "मोबाइल", "नंबर", "फोन"}, target: recordField("farmerPhone"), format: formatx.Phone},
		{keys: []string{"वैराइटी", "किस्म", "बीज"}, target: recordField("variety")},
		{keys: []string{"कंपनी", "सीड कंपनी"}, target: recordField("seedCompany")},
		{keys: []string{"हाइट", "ऊंचाई", "लंबाई"}, target: zoneField("plantHeight")},
		{keys: []string{"रंग", "कलर"}, target: zoneField("plantColor")},
	},
	models.Odia: {
		{keys: []string{"ଜିଲ୍ଲା", "ଜିଲ୍ଲାର"}, target: recordField("district")},
		{keys: []string{"ବ୍ଲକ", "ପ୍ରଖଣ୍ଡ"}, target: recordField("block")},
		{keys: []string{"ଗାଁ", "ଗ୍ରାମ", "ଭିଲେଜ"}, target: recordField("village")},
		{keys: []string{"ଏକର", "ଏରିଆ", "କ୍ଷେତ୍ରଫଳ"}, target: recordField("fieldAreaAcres")},
		{keys: []string{"ଚାଷୀଙ୍କ ନାମ", "ନାମ", "ଚାଷୀ"}, target: recordField("farmerName")},
		{keys: []string{"ଫୋନ", "ମୋବାଇଲ", "ନମ୍ବର"}, target: recordField("farmerPhone"), format: formatx.Phone},
		{keys: []string{"କିସମ", "ବ୍ରାଇଟି", "ବିହନ"}, target: recordField("variety")},
		{keys: []string{"ଉଚ୍ଚତା", "ହାଇଟ"}, target: zoneField("plantHeight")},
		{keys: []string{"ରଙ୍ଗ", "କଲର"}, target: zoneField("plantColor")},
	},
}

type compiled struct {
	re     *regexp.Regexp
	target target
	format func(string) string
}

var patterns = compileAll()

// A key may be followed by a copula ("is", "है", "ଅଛି") or a colon; the
// value runs to the next comma, full stop, danda or newline.
func compileAll() map[models.Language][]compiled {
	out := make(map[models.Language][]compiled, len(mappings))
	for lang, ms := range mappings {
		for _, m := range ms {
			for _, key := range m.keys {
				re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key) + `\s*(?:is|है|ଅଛି|:)?\s*([^,.।\n]+)`)
				out[lang] = append(out[lang], compiled{re: re, target: m.target, format: m.format})
			}
		}
	}
	return out
}

// Result holds the values recognized in one transcript, keyed by JSON field
// name.
type Result struct {
	Fields map[string]string
	Zone   map[string]string
}

func (r Result) Empty() bool {
	return len(r.Fields) == 0 && len(r.Zone) == 0
}

// Parse scans transcript with the keyword table of lang; unsupported
// languages use English. When several keys hit the same field the one listed
// last wins.
func Parse(transcript string, lang models.Language) Result {
	table, ok := patterns[lang]
	if !ok {
		table = patterns[models.English]
	}

	res := Result{Fields: map[string]string{}, Zone: map[string]string{}}
	for _, p := range table {
		m := p.re.FindStringSubmatch(transcript)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if p.format != nil {
			value = p.format(value)
		}
		if value == "" {
			continue
		}
		if p.target.zone {
			res.Zone[p.target.field] = value
		} else {
			res.Fields[p.target.field] = value
		}
	}
	return res
}

// Apply writes the recognized values into rec. Zone values go to zoneID and
// require it to name one of the record's zones.
func (r Result) Apply(rec *models.FieldRecord, zoneID models.ZoneID) error {
	for _, name := range sortedKeys(r.Fields) {
		if err := rec.ApplyField(name, r.Fields[name]); err != nil {
			return err
		}
	}
	if len(r.Zone) == 0 {
		return nil
	}
	zone := rec.Zone(zoneID)
	if zone == nil {
		return fmt.Errorf("zone %q not found", zoneID)
	}
	for _, name := range sortedKeys(r.Zone) {
		if err := zone.SetField(name, r.Zone[name]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
