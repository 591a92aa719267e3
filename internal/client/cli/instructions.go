package cli

import "github.com/dmitrijs2005/fieldkeeper/internal/client/models"

// Spoken prompts, keyed by screen.
const (
	instrRecords   = "records"
	instrNewRecord = "new_record"
	instrSaved     = "saved"
	instrZone      = "zone"
)

var instructions = map[models.Language]map[string]string{
	models.English: {
		instrRecords:   "Here are your saved field records.",
		instrNewRecord: "New field record started. Stand at the field entry and enter the field details.",
		instrSaved:     "Details saved.",
		instrZone:      "Walk to the zone and record plant height and plant color.",
	},
	models.Hindi: {
		instrRecords:   "यह आपके सहेजे गए खेत रिकॉर्ड हैं।",
		instrNewRecord: "नया खेत रिकॉर्ड शुरू हुआ। खेत के प्रवेश पर खड़े होकर खेत का विवरण दर्ज करें।",
		instrSaved:     "विवरण सहेजा गया।",
		instrZone:      "ज़ोन में जाएं और पौधे की ऊंचाई और रंग दर्ज करें।",
	},
	models.Odia: {
		instrRecords:   "ଏହା ଆପଣଙ୍କ ସଂରକ୍ଷିତ କ୍ଷେତ ରେକର୍ଡ।",
		instrNewRecord: "ନୂଆ କ୍ଷେତ ରେକର୍ଡ ଆରମ୍ଭ ହେଲା। କ୍ଷେତ ପ୍ରବେଶରେ ଠିଆ ହୋଇ କ୍ଷେତର ବିବରଣୀ ଦିଅନ୍ତୁ।",
		instrSaved:     "ବିବରଣୀ ସଂରକ୍ଷିତ ହେଲା।",
		instrZone:      "ଜୋନକୁ ଯାଆନ୍ତୁ ଏବଂ ଗଛର ଉଚ୍ଚତା ଓ ରଙ୍ଗ ଲେଖନ୍ତୁ।",
	},
}

// instruction returns the prompt for key in lang, falling back to English.
func instruction(lang models.Language, key string) (string, bool) {
	if m, ok := instructions[lang]; ok {
		if s, ok := m[key]; ok {
			return s, true
		}
	}
	s, ok := instructions[models.English][key]
	return s, ok
}
