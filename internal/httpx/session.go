package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Autentikasi urusan layer di depan (reverse proxy / gateway); cookie ini
// cuma identitas keranjang per sesi kasir.
const SessionCookie = "pos_session"

type ctxKey int

const sessionKey ctxKey = 0

// WithSession memastikan setiap request punya session id; yang belum punya
// dikasih cookie uuid baru.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			sid = c.Value
		} else {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sid)))
	})
}

func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
