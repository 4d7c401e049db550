// Package auth implements cookie-session authentication. Users sign in with
// a display name; the account is created on first sign-in.
package auth

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/mlinna/recoverly/internal/errors"
	"github.com/mlinna/recoverly/internal/sqlite"
)

const userIDSessionKey = "userID"

const maxNameLength = 64

var (
	// ErrInvalidName is returned when the sign-in name is empty or too long.
	ErrInvalidName = errors.NewSentinel("invalid sign-in name")
)

type Handler struct {
	database       *sqlite.Database
	sessionManager *scs.SessionManager
	logger         *slog.Logger
}

func New(database *sqlite.Database, sessionManager *scs.SessionManager, logger *slog.Logger) *Handler {
	return &Handler{
		database:       database,
		sessionManager: sessionManager,
		logger:         logger,
	}
}

// SignIn finds or creates the user with the given name and binds the session
// to them. The session token is renewed to prevent session fixation.
func (h *Handler) SignIn(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return ErrInvalidName
	}

	userID, err := h.findOrCreateUser(ctx, name)
	if err != nil {
		return errors.Wrap(err, "find or create user", slog.String("name", name))
	}

	if err = h.sessionManager.RenewToken(ctx); err != nil {
		return errors.Wrap(err, "renew session token")
	}
	h.sessionManager.Put(ctx, userIDSessionKey, userID)

	h.logger.LogAttrs(ctx, slog.LevelInfo, "user signed in", slog.Int("user_id", userID))
	return nil
}

// Logout clears the user from the session.
func (h *Handler) Logout(ctx context.Context) error {
	if err := h.sessionManager.RenewToken(ctx); err != nil {
		return errors.Wrap(err, "renew session token")
	}
	h.sessionManager.Remove(ctx, userIDSessionKey)
	return nil
}

func (h *Handler) findOrCreateUser(ctx context.Context, name string) (int, error) {
	var userID int
	err := h.database.ReadOnly.QueryRowContext(ctx,
		`SELECT id FROM users WHERE name = ?`, name).Scan(&userID)
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrap(err, "query user")
	}

	// INSERT OR IGNORE followed by a re-query keeps a concurrent first
	// sign-in with the same name from failing on the unique constraint.
	if _, err = h.database.ReadWrite.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (name) VALUES (?)`, name); err != nil {
		return 0, errors.Wrap(err, "insert user")
	}
	if err = h.database.ReadOnly.QueryRowContext(ctx,
		`SELECT id FROM users WHERE name = ?`, name).Scan(&userID); err != nil {
		return 0, errors.Wrap(err, "query created user")
	}
	return userID, nil
}

// lookupUser reports whether the user still exists.
func (h *Handler) lookupUser(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := h.database.ReadOnly.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)`, userID).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "query user existence")
	}
	return exists, nil
}
