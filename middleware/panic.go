package middleware

import (
	"elverra-club-backend/logger"
	"elverra-club-backend/metrics"
	"elverra-club-backend/response"
	"net/http"
	"runtime"
)

func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				const size = 1 << 16
				buf := make([]byte, size)
				buf = buf[:runtime.Stack(buf, false)]
				logger.Errorf(r.Context(), "panic: %v\n%s", err, buf)

				metrics.Registry("elverra").Errors.WithLabelValues("panic").Inc()

				response.SomethingWrong().Send(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
