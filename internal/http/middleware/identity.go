// README: Request and client identification for logging and assistant quotas.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderClientID  = "X-Client-ID"

	requestIDKey = "request_id"
	clientIDKey  = "client_id"
)

// maxClientIDLen bounds header-supplied ids stored as quota keys.
const maxClientIDLen = 64

// Identity tags every request with a request id (echoed back) and a client id. Callers
// without an X-Client-ID header are identified by their IP.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(HeaderRequestID, rid)

		cid := strings.TrimSpace(c.GetHeader(HeaderClientID))
		if cid == "" || len(cid) > maxClientIDLen {
			cid = c.ClientIP()
		}
		c.Set(clientIDKey, cid)
		c.Next()
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func ClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
