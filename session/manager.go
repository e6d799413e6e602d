package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/komoralink/komora/dto"
)

const (
	KeyToken       = "auth_token"
	KeyProfile     = "user_profile"
	KeyProfileType = "profile_type"
)

// ProfileType is the onboarding choice between a personal and a business account.
type ProfileType string

const (
	ProfileParticulier   ProfileType = "particulier"
	ProfileProfessionnel ProfileType = "professionnel"
)

func (p ProfileType) Valid() bool {
	return p == ProfileParticulier || p == ProfileProfessionnel
}

var (
	ErrNoSession      = errors.New("session: not logged in")
	ErrInvalidProfile = errors.New("session: invalid profile type")
)

// Manager reads and writes the persisted session. It implements client.TokenSource.
type Manager struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

func (m *Manager) Store() Store {
	return m.store
}

// Login persists the token and the serialized profile.
func (m *Manager) Login(ctx context.Context, token string, profile dto.UserProfile) error {
	if token == "" {
		return errors.New("session: empty token")
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyProfile, string(raw)); err != nil {
		return err
	}
	m.logger.Info("session opened", zap.String("user_id", profile.ID))
	return nil
}

// Token returns the stored token, or "" when logged out.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.store.Get(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (m *Manager) Profile(ctx context.Context) (dto.UserProfile, error) {
	var profile dto.UserProfile
	raw, err := m.store.Get(ctx, KeyProfile)
	if errors.Is(err, ErrNotFound) {
		return profile, ErrNoSession
	}
	if err != nil {
		return profile, err
	}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return profile, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

func (m *Manager) SetProfileType(ctx context.Context, t ProfileType) error {
	if !t.Valid() {
		return ErrInvalidProfile
	}
	return m.store.Set(ctx, KeyProfileType, string(t))
}

// ProfileType returns the chosen profile type, "" when none was chosen.
func (m *Manager) ProfileType(ctx context.Context) (ProfileType, error) {
	v, err := m.store.Get(ctx, KeyProfileType)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return ProfileType(v), err
}

// Restore reports whether a usable session is stored. An expired or unreadable token is removed
// together with the profile. The signature is not checked here; the API does that.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	token, err := m.Token(ctx)
	if err != nil || token == "" {
		return false, err
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		m.logger.Info("dropping unreadable session token", zap.Error(err))
		return false, m.store.Delete(ctx, KeyToken, KeyProfile)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(m.now()) {
		m.logger.Info("dropping expired session", zap.Time("expired_at", claims.ExpiresAt.Time))
		return false, m.store.Delete(ctx, KeyToken, KeyProfile)
	}
	return true, nil
}

// Clear removes the token, the profile and the profile type.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, KeyToken, KeyProfile, KeyProfileType)
}

// ForceClear wipes the whole store.
func (m *Manager) ForceClear(ctx context.Context) error {
	return m.store.Clear(ctx)
}
