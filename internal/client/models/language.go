package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fieldkeeper/internal/common"
)

// Language is an app language code. Voice instructions and voice entry are
// available in all of them.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Odia    Language = "od"
)

// DefaultLanguage is used until the user picks one.
const DefaultLanguage = English

// Languages lists the supported languages.
var Languages = []Language{English, Hindi, Odia}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Languages {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnsupportedLanguage, s)
}

func (l Language) String() string { return string(l) }
