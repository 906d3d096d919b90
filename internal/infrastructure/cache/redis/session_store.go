package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

const sessionPrefix = "session:"

// SessionStore keeps server-side sessions in Redis with auto-expiry.
type SessionStore struct {
	client *Client
}

func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionData struct {
	ID          string    `json:"id"`
	ExternalID  string    `json:"external_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Create saves the session with TTL. Uses SetNX to prevent ID collisions.
func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	key := sessionPrefix + sess.ID

	data := sessionData{
		ID:          sess.ID,
		ExternalID:  sess.Identity.ExternalID,
		Username:    sess.Identity.Username,
		DisplayName: sess.Identity.DisplayName,
		Email:       sess.Identity.Email,
		AvatarURL:   sess.Identity.AvatarURL,
		CreatedAt:   sess.CreatedAt,
		ExpiresAt:   sess.ExpiresAt,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session")
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return apperrors.ErrSessionExpired
	}

	success, err := s.client.SetNX(ctx, key, jsonData, ttl)
	if err != nil {
		return apperrors.Wrap(err, "failed to store session")
	}

	if !success {
		return apperrors.Wrap(apperrors.ErrInternal, "session id collision")
	}

	return nil
}

// Get retrieves and validates a session. Returns ErrSessionAbsent if not found
// or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	key := sessionPrefix + id

	jsonData, err := s.client.Get(ctx, key)
	if err != nil {
		if err == goredis.Nil {
			return nil, apperrors.ErrSessionAbsent
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}

	var data sessionData
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal session")
	}

	// Double-check expiry in case Redis TTL drifted
	if time.Now().UTC().After(data.ExpiresAt) {
		_ = s.Delete(ctx, id)
		return nil, apperrors.ErrSessionAbsent
	}

	return &session.Session{
		ID: data.ID,
		Identity: identity.Identity{
			ExternalID:  data.ExternalID,
			Username:    data.Username,
			DisplayName: data.DisplayName,
			Email:       data.Email,
			AvatarURL:   data.AvatarURL,
		},
		CreatedAt: data.CreatedAt,
		ExpiresAt: data.ExpiresAt,
	}, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	key := sessionPrefix + id

	if err := s.client.Delete(ctx, key); err != nil {
		return apperrors.Wrap(err, "failed to delete session")
	}

	return nil
}
