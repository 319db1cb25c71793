package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const clientMetaKey ctxKey = "client_meta"

// ClientMeta es la metadata del request que el flujo de escaneo guarda en
// el ScanEvent. Se captura acá y no en el handler para que /scan/test
// pueda correr el mismo flujo con contexto sintético (sin meta).
type ClientMeta struct {
	UserAgent string
	Referrer  string
	RemoteIP  string
}

// CaptureClientMeta inyecta la metadata del cliente en el context.
// No corta nunca el request; los handlers deciden si la usan.
func CaptureClientMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := ClientMeta{
			UserAgent: strings.TrimSpace(r.UserAgent()),
			Referrer:  strings.TrimSpace(r.Referer()),
			RemoteIP:  r.RemoteAddr,
		}

		ctx := context.WithValue(r.Context(), clientMetaKey, meta)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetClientMeta(ctx context.Context) (ClientMeta, bool) {
	v := ctx.Value(clientMetaKey)
	if v == nil {
		return ClientMeta{}, false
	}
	m, ok := v.(ClientMeta)
	return m, ok
}
