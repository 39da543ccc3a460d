package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipe-wizard/backend/internal/completion"
	"github.com/pageza/recipe-wizard/backend/internal/recipe"
	"github.com/pageza/recipe-wizard/backend/internal/store"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("wizard session not found")
	// ErrInvalidTransition is returned when an operation is not allowed in
	// the session's current state.
	ErrInvalidTransition = errors.New("invalid wizard transition")
	// ErrUnknownSuggestion is returned by Select for a title that is not one
	// of the session's suggestions.
	ErrUnknownSuggestion = errors.New("title is not one of the current suggestions")
)

// State is the wizard step a session is on.
type State string

const (
	StateBuilding   State = "building"
	StateSuggesting State = "suggesting"
	StateViewing    State = "viewing"
	StateErred      State = "erred"
)

// Operation names the generation step that produced a failure.
type Operation string

const (
	OpSuggest Operation = "suggest"
	OpRecipe  Operation = "recipe"
)

// Failure describes why a session is in StateErred.
type Failure struct {
	Op      Operation       `json:"op"`
	Kind    completion.Kind `json:"kind"`
	Message string          `json:"message"`
}

// Session is the persisted wizard state.
type Session struct {
	ID          string              `json:"id"`
	State       State               `json:"state"`
	Form        *recipe.FormData    `json:"form,omitempty"`
	Suggestions []recipe.Suggestion `json:"suggestions"`
	Selected    string              `json:"selected,omitempty"`
	Recipe      *recipe.FullRecipe  `json:"recipe,omitempty"`
	Failure     *Failure            `json:"failure,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (s *Session) failedOp() Operation {
	if s.State != StateErred || s.Failure == nil {
		return ""
	}
	return s.Failure.Op
}

func transitionError(op string, from State) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, op, from)
}

const sessionKeyPrefix = "wizard_session:"

// SessionStore persists sessions as JSON in a KV with a sliding TTL.
type SessionStore struct {
	kv  store.KV
	ttl time.Duration
}

// NewSessionStore creates a session store. Each save resets the TTL.
func NewSessionStore(kv store.KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

// Get loads the session or returns ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.kv.Get(ctx, sessionKeyPrefix+id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Save writes sess.
func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKeyPrefix+sess.ID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

const lockStripes = 64

// WizardService runs the Building -> Suggesting -> Viewing flow for sessions.
// Operations on one session are serialised so at most one completion request
// is in flight per session.
type WizardService struct {
	recipes     IRecipeService
	sessions    *SessionStore
	preferences IPreferencesService
	history     IHistoryService
	log         zerolog.Logger
	now         func() time.Time

	locks [lockStripes]sync.Mutex
}

// NewWizardService creates a new WizardService. preferences and history may be nil.
func NewWizardService(recipes IRecipeService, sessions *SessionStore, preferences IPreferencesService, history IHistoryService, log zerolog.Logger) *WizardService {
	return &WizardService{
		recipes:     recipes,
		sessions:    sessions,
		preferences: preferences,
		history:     history,
		log:         log.With().Str("component", "wizard_service").Logger(),
		now:         time.Now,
	}
}

func (w *WizardService) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &w.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// Create starts a new session in StateBuilding.
func (w *WizardService) Create(ctx context.Context) (*Session, error) {
	now := w.now()
	sess := &Session{
		ID:          uuid.New().String(),
		State:       StateBuilding,
		Suggestions: []recipe.Suggestion{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := w.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	w.log.Info().Str("session_id", sess.ID).Msg("wizard session created")
	return sess, nil
}

// Get returns the current session.
func (w *WizardService) Get(ctx context.Context, id string) (*Session, error) {
	return w.sessions.Get(ctx, id)
}

// update loads the session under its lock, applies fn and saves the result.
// fn may return a completion error alongside a mutated session; the session
// is still saved and the error is returned with it.
func (w *WizardService) update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := w.lock(id)
	defer unlock()

	sess, err := w.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	opErr := fn(sess)
	if opErr != nil && completion.KindOf(opErr) == "" {
		return nil, opErr
	}

	sess.UpdatedAt = w.now()
	if err := w.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, opErr
}

// Submit validates form and generates suggestions for it. Allowed from
// StateBuilding or after a failed suggest.
func (w *WizardService) Submit(ctx context.Context, id string, form recipe.FormData) (*Session, error) {
	return w.update(ctx, id, func(sess *Session) error {
		if sess.State != StateBuilding && sess.failedOp() != OpSuggest {
			return transitionError("submit", sess.State)
		}
		if err := form.Validate(); err != nil {
			return err
		}

		w.remember(ctx, sess.ID, form)
		sess.Form = &form
		return w.suggest(ctx, sess)
	})
}

// Select generates the full recipe for one of the current suggestions.
// Allowed from StateSuggesting or after a failed recipe generation.
func (w *WizardService) Select(ctx context.Context, id, title string) (*Session, error) {
	title = strings.TrimSpace(title)
	return w.update(ctx, id, func(sess *Session) error {
		if sess.State != StateSuggesting && sess.failedOp() != OpRecipe {
			return transitionError("select", sess.State)
		}
		if title == "" {
			return ErrEmptyTitle
		}
		if !hasSuggestion(sess.Suggestions, title) {
			return ErrUnknownSuggestion
		}

		sess.Selected = title
		return w.fullRecipe(ctx, sess)
	})
}

// Retry re-runs the failed operation with the same input.
func (w *WizardService) Retry(ctx context.Context, id string) (*Session, error) {
	return w.update(ctx, id, func(sess *Session) error {
		switch sess.failedOp() {
		case OpSuggest:
			return w.suggest(ctx, sess)
		case OpRecipe:
			return w.fullRecipe(ctx, sess)
		default:
			return transitionError("retry", sess.State)
		}
	})
}

// StartOver discards everything and returns to StateBuilding.
func (w *WizardService) StartOver(ctx context.Context, id string) (*Session, error) {
	return w.update(ctx, id, func(sess *Session) error {
		sess.State = StateBuilding
		sess.Form = nil
		sess.Suggestions = []recipe.Suggestion{}
		sess.Selected = ""
		sess.Recipe = nil
		sess.Failure = nil
		return nil
	})
}

// GenerateNew returns to StateBuilding keeping the last form for editing.
func (w *WizardService) GenerateNew(ctx context.Context, id string) (*Session, error) {
	return w.update(ctx, id, func(sess *Session) error {
		sess.State = StateBuilding
		sess.Suggestions = []recipe.Suggestion{}
		sess.Selected = ""
		sess.Recipe = nil
		sess.Failure = nil
		return nil
	})
}

// TryDifferent goes back from a recipe to the same suggestions.
func (w *WizardService) TryDifferent(ctx context.Context, id string) (*Session, error) {
	return w.update(ctx, id, func(sess *Session) error {
		if sess.State != StateViewing && sess.failedOp() != OpRecipe {
			return transitionError("try a different recipe", sess.State)
		}
		sess.State = StateSuggesting
		sess.Selected = ""
		sess.Recipe = nil
		sess.Failure = nil
		return nil
	})
}

func (w *WizardService) suggest(ctx context.Context, sess *Session) error {
	suggestions, err := w.recipes.GenerateSuggestions(ctx, *sess.Form)
	if err != nil {
		return w.fail(sess, OpSuggest, err)
	}

	sess.State = StateSuggesting
	sess.Suggestions = suggestions
	sess.Selected = ""
	sess.Recipe = nil
	sess.Failure = nil
	return nil
}

func (w *WizardService) fullRecipe(ctx context.Context, sess *Session) error {
	if sess.Form == nil {
		return transitionError("select", sess.State)
	}

	fr, err := w.recipes.GenerateFullRecipe(ctx, sess.Selected, *sess.Form)
	if err != nil {
		return w.fail(sess, OpRecipe, err)
	}

	sess.State = StateViewing
	sess.Recipe = fr
	sess.Failure = nil

	if w.history != nil {
		if _, err := w.history.Record(ctx, sess.ID, fr); err != nil {
			w.log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to record recipe history")
		}
	}
	return nil
}

// fail moves sess to StateErred for completion errors. Other errors leave the
// session untouched and are returned as-is.
func (w *WizardService) fail(sess *Session, op Operation, err error) error {
	var cerr *completion.Error
	if !errors.As(err, &cerr) {
		return err
	}

	sess.State = StateErred
	sess.Failure = &Failure{Op: op, Kind: cerr.Kind, Message: cerr.Message}
	w.log.Warn().
		Str("session_id", sess.ID).
		Str("op", string(op)).
		Str("kind", string(cerr.Kind)).
		Msg("wizard generation failed")
	return err
}

func (w *WizardService) remember(ctx context.Context, sessionID string, form recipe.FormData) {
	if w.preferences == nil {
		return
	}
	// Failures here must not block generation.
	if err := w.preferences.SavePreferences(ctx, sessionID, PreferencesFromForm(form)); err != nil {
		w.log.Debug().Err(err).Str("session_id", sessionID).Msg("preferences not saved")
	}
	if err := w.preferences.SaveFormState(ctx, sessionID, form); err != nil {
		w.log.Debug().Err(err).Str("session_id", sessionID).Msg("form state not saved")
	}
}

func hasSuggestion(suggestions []recipe.Suggestion, title string) bool {
	for _, s := range suggestions {
		if strings.TrimSpace(s.Title) == title {
			return true
		}
	}
	return false
}
