package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAccessEmail = "Cf-Access-Authenticated-User-Email"
	HeaderAccessName  = "Cf-Access-Authenticated-User-Name"

	msgUnauthorized = "No autorizado: Cloudflare Access es requerido"
	userKey         = "user"
)

// User is the identity asserted by the edge access proxy.
type User struct {
	Email string
	Name  string
}

var localUser = User{Email: "admin@local.dev", Name: "Administrador Local"}

// RequireAccess trusts the edge access headers as-is. Requests to a local
// hostname without them run as a fixed development user.
func RequireAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(HeaderAccessEmail))
		if email != "" {
			name := strings.TrimSpace(c.GetHeader(HeaderAccessName))
			if name == "" {
				name = strings.SplitN(email, "@", 2)[0]
			}
			c.Set(userKey, User{Email: email, Name: name})
			c.Next()
			return
		}

		if isLocalHost(c.Request.Host) {
			c.Set(userKey, localUser)
			c.Next()
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}
		c.String(http.StatusUnauthorized, msgUnauthorized)
		c.Abort()
	}
}

func CurrentUser(c *gin.Context) User {
	if u, ok := c.Get(userKey); ok {
		if user, ok := u.(User); ok {
			return user
		}
	}
	return User{}
}

func isLocalHost(hostport string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	return host == "localhost" || host == "127.0.0.1"
}
