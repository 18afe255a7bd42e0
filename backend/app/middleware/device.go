package middleware

import (
	"net/http"

	"github.com/arpitkhare33/maxshapez-printer-update/backend/app/audit"
)

// DeviceGate authorizes printer-originated requests with one static shared
// secret carried in a request header. This is a weaker trust channel than
// operator tokens: no per-device identity, no rotation. A missing or wrong
// header is denied with 403; every denial is audited with the client IP.
type DeviceGate struct {
	HeaderName string
	Secret     string
	Audit      *audit.Logger
}

func (g *DeviceGate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(g.HeaderName) != g.Secret {
			_ = g.Audit.Recordf("UNAUTHORIZED ACCESS: Missing or invalid %s from %s", g.HeaderName, ClientIP(r))
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("Forbidden: Missing Headers from request"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
