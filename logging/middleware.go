package logging

import (
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/user/movieapi-go/apperror"
)

// RequestLogger attaches a request-scoped logger (carrying the chi request id)
// to the context, so log.Ctx(r.Context()) in handlers is correlated.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

// AccessLog writes one JSON line per request to out, in the spirit of the
// combined log format: remote address, method, path, status, bytes, referer and user agent.
func AccessLog(out io.Writer) func(next http.Handler) http.Handler {
	logger := zerolog.New(out).With().Timestamp().Logger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Log().
					Str("remote", r.RemoteAddr).
					Str("method", r.Method).
					Str("path", r.URL.RequestURI()).
					Str("proto", r.Proto).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Str("referer", r.Referer()).
					Str("user_agent", r.UserAgent()).
					Str("request_id", middleware.GetReqID(r.Context())).
					Dur("duration", time.Since(start)).
					Send()
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// Recoverer turns a panic in any downstream handler into a logged 500.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			log.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			apperror.WriteJSON(w, http.StatusInternalServerError, apperror.ErrorResponse{Error: "Something broke!"})
		}()
		next.ServeHTTP(w, r)
	})
}
