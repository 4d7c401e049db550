package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/mlinna/recoverly/internal/contexthelpers"
	"github.com/mlinna/recoverly/internal/logging"
)

// AuthenticateMiddleware resolves the session's user and stores it in the
// request context. Requests without a valid session pass through
// unauthenticated.
func (h *Handler) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := h.sessionManager.GetInt(ctx, userIDSessionKey)

		// User has not yet signed in.
		if userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		exists, err := h.lookupUser(ctx, userID)
		if err != nil {
			h.logger.LogAttrs(ctx, slog.LevelError, "unable to fetch user", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		// Do not authenticate if the user no longer exists.
		if exists {
			r = contexthelpers.AuthenticateContext(r, userID)
		}

		// Add session information to logging context.
		token := h.sessionManager.Token(ctx)
		// Hash token with sha256 to avoid leaking it in logs.
		tokenHash := sha256.Sum256([]byte(token))
		ctx = logging.WithAttrs(r.Context(),
			slog.String("session_hash", hex.EncodeToString(tokenHash[:])),
			slog.Int("user_id", userID),
		)
		r = r.WithContext(ctx)

		next.ServeHTTP(w, r)
	})
}
