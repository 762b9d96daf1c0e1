package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs each request with logrus fields once the response is
// written.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		entry := logrus.WithFields(logrus.Fields{
			"status":  ww.Status(),
			"latency": time.Since(start),
			"method":  r.Method,
			"path":    r.URL.Path,
		})

		switch {
		case ww.Status() >= 500:
			entry.Error("server error")
		case ww.Status() >= 400:
			entry.Warn("client error")
		default:
			entry.Info("request")
		}
	})
}
