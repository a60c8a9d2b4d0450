package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookie = "equip_session"

// EnsureSession gives every caller an anonymous session id carried in a
// cookie. The session owns exactly one cart; there is no authentication —
// borrowers are free-text fields on the ledger, not accounts.
func EnsureSession(cfg Config) gin.HandlerFunc {
	secure := strings.HasPrefix(cfg.WebOrigin, "https://")
	return func(c *gin.Context) {
		sid := ""
		if ck, err := c.Request.Cookie(SessionCookie); err == nil {
			sid = ck.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   secure,
				MaxAge:   int(cfg.CartTTL / time.Second),
			})
		}
		c.Set("sessionID", sid)
		c.Next()
	}
}

// SessionID reads the id set by EnsureSession.
func SessionID(c *gin.Context) string {
	v, _ := c.Get("sessionID")
	sid, _ := v.(string)
	return sid
}
