package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/models"
	"github.com/dmitrijs2005/fieldkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/fieldkeeper/internal/logging"
)

const (
	LanguageKey = "fieldkeeper_language"
	VoiceKey    = "fieldkeeper_voice"
	SelfieKey   = "fieldkeeper_selfie"
)

const (
	voiceOn  = "yes"
	voiceOff = "no"
)

// Preferences are scalar user settings, one kv key each.
type Preferences struct {
	repo kv.Repository
	log  logging.Logger
}

func NewPreferences(repo kv.Repository, log logging.Logger) *Preferences {
	return &Preferences{repo: repo, log: log}
}

func (p *Preferences) get(ctx context.Context, key string) (string, bool) {
	v, err := p.repo.Get(ctx, key)
	if err != nil {
		p.log.Error(ctx, "failed to read preference", "key", key, "err", err)
		return "", false
	}
	if v == nil {
		return "", false
	}
	return string(v), true
}

func (p *Preferences) set(ctx context.Context, key, value string) error {
	if err := p.repo.Set(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

// Language returns the stored language. A missing or unknown value reports
// ok=false.
func (p *Preferences) Language(ctx context.Context) (models.Language, bool) {
	v, ok := p.get(ctx, LanguageKey)
	if !ok {
		return "", false
	}
	lang, err := models.ParseLanguage(v)
	if err != nil {
		p.log.Warn(ctx, "ignoring stored language", "value", v, "err", err)
		return "", false
	}
	return lang, true
}

func (p *Preferences) SetLanguage(ctx context.Context, lang models.Language) error {
	return p.set(ctx, LanguageKey, string(lang))
}

// VoiceEnabled reports the voice-instructions flag; unset means enabled.
func (p *Preferences) VoiceEnabled(ctx context.Context) bool {
	v, ok := p.get(ctx, VoiceKey)
	return !ok || v != voiceOff
}

// VoicePreference returns the raw stored flag ("yes" or "no").
func (p *Preferences) VoicePreference(ctx context.Context) (string, bool) {
	return p.get(ctx, VoiceKey)
}

func (p *Preferences) SetVoiceEnabled(ctx context.Context, enabled bool) error {
	v := voiceOff
	if enabled {
		v = voiceOn
	}
	return p.set(ctx, VoiceKey, v)
}

func (p *Preferences) Selfie(ctx context.Context) (string, bool) {
	return p.get(ctx, SelfieKey)
}

func (p *Preferences) SetSelfie(ctx context.Context, uri string) error {
	return p.set(ctx, SelfieKey, uri)
}
