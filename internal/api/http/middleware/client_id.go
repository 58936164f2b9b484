package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderClientID = "X-Client-Id"
	CookieClientID = "obralog_client"
	CtxClientID    = "client_id"

	clientCookieMaxAge = 365 * 24 * 60 * 60
	maxClientIDLen     = 128
)

// ClientIDMiddleware identifies the browser making the request. The id keys
// its persisted UI preferences and its shell session:
// - X-Client-Id header wins when present
// - otherwise the obralog_client cookie
// - otherwise a new id is minted and set as the cookie
func ClientIDMiddleware(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sanitizeClientID(c.GetHeader(HeaderClientID))
		if id == "" {
			if v, err := c.Cookie(CookieClientID); err == nil {
				id = sanitizeClientID(v)
			}
		}
		if id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieClientID, id, clientCookieMaxAge, "/", "", secureCookie, true)
		}

		c.Set(CtxClientID, id)
		c.Next()
	}
}

// ClientID returns the id set by ClientIDMiddleware.
func ClientID(c *gin.Context) string {
	return c.GetString(CtxClientID)
}

// sanitizeClientID keeps ids usable as Redis key segments.
func sanitizeClientID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxClientIDLen {
		return ""
	}
	for _, r := range v {
		ok := r == '-' || r == '_' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return ""
		}
	}
	return v
}
