package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/store"
)

const (
	preferencesKeyPrefix = "recipe_app_preferences:"
	formStateKeyPrefix   = "recipe_app_form_state:"
)

// Preferences are the form choices remembered between submissions.
type Preferences struct {
	ProteinAmount int               `json:"proteinAmount,omitempty"`
	CookingStyle  string            `json:"cookingStyle,omitempty"`
	Preference    recipe.Preference `json:"preference,omitempty"`
}

// PreferencesFromForm extracts the remembered fields of form.
func PreferencesFromForm(form recipe.FormData) Preferences {
	return Preferences{
		ProteinAmount: form.ProteinAmount,
		CookingStyle:  form.CookingStyle,
		Preference:    form.Preference,
	}
}

// PreferencesService stores preferences and in-progress form state per session.
// Reads never fail: a missing or unreadable value yields the empty result.
type PreferencesService struct {
	kv  store.KV
	ttl time.Duration
	log zerolog.Logger
}

// NewPreferencesService creates a service over kv. Values expire after ttl;
// zero keeps them indefinitely.
func NewPreferencesService(kv store.KV, ttl time.Duration, log zerolog.Logger) *PreferencesService {
	return &PreferencesService{
		kv:  kv,
		ttl: ttl,
		log: log.With().Str("component", "preferences_service").Logger(),
	}
}

// GetPreferences returns the saved preferences or the zero value.
func (s *PreferencesService) GetPreferences(ctx context.Context, sessionID string) Preferences {
	var prefs Preferences
	if !s.read(ctx, preferencesKeyPrefix+sessionID, &prefs) {
		return Preferences{}
	}
	return prefs
}

// SavePreferences replaces the saved preferences.
func (s *PreferencesService) SavePreferences(ctx context.Context, sessionID string, prefs Preferences) error {
	return s.write(ctx, preferencesKeyPrefix+sessionID, prefs)
}

// GetFormState returns the saved form, or nil when there is none.
func (s *PreferencesService) GetFormState(ctx context.Context, sessionID string) *recipe.FormData {
	var form recipe.FormData
	if !s.read(ctx, formStateKeyPrefix+sessionID, &form) {
		return nil
	}
	return &form
}

// SaveFormState replaces the saved form.
func (s *PreferencesService) SaveFormState(ctx context.Context, sessionID string, form recipe.FormData) error {
	return s.write(ctx, formStateKeyPrefix+sessionID, form)
}

// ClearFormState removes the saved form.
func (s *PreferencesService) ClearFormState(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, formStateKeyPrefix+sessionID); err != nil {
		s.log.Error().Err(err).Str("session_id", sessionID).Msg("error clearing form state")
		return err
	}
	return nil
}

// InitialForm is the form a builder starts from: the saved form state when
// present, otherwise the defaults overlaid with saved preferences.
func (s *PreferencesService) InitialForm(ctx context.Context, sessionID string) recipe.FormData {
	if form := s.GetFormState(ctx, sessionID); form != nil {
		return *form
	}

	form := recipe.DefaultFormData()
	prefs := s.GetPreferences(ctx, sessionID)
	if prefs.ProteinAmount != 0 {
		form.ProteinAmount = prefs.ProteinAmount
	}
	if prefs.CookingStyle != "" {
		form.CookingStyle = prefs.CookingStyle
	}
	if prefs.Preference != "" {
		form.Preference = prefs.Preference
	}
	return form
}

func (s *PreferencesService) read(ctx context.Context, key string, dst interface{}) bool {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error reading from store")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error decoding stored value")
		return false
	}
	return true
}

func (s *PreferencesService) write(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error saving to store")
		return err
	}
	return nil
}
