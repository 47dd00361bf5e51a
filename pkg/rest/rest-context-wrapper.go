package rest

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey int

const loggerKey contextKey = iota

// RequestLogger tags each request with a unique ID and stores a request
// scoped logger in the context, retrievable through GetLogger.
func RequestLogger(base logrus.FieldLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, request *http.Request) {

			reqUUID, err := uuid.NewV4()
			if err != nil {
				base.WithError(err).Error("can't generate a request UUID")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			logger := base.WithFields(logrus.Fields{
				"reqid":     reqUUID.String(),
				"remote-ip": request.RemoteAddr,
			})

			logger.Debugf("%s %s", request.Method, request.URL.Path)

			next.ServeHTTP(w, request.WithContext(
				context.WithValue(request.Context(), loggerKey, logger)))
		})
	}
}

// GetLogger returns the request scoped logger stored by RequestLogger, or a
// bare logger when the middleware isn't in the chain, such as during tests.
func GetLogger(request *http.Request) logrus.FieldLogger {
	if logger, ok := request.Context().Value(loggerKey).(logrus.FieldLogger); ok {
		return logger
	}
	return logrus.StandardLogger()
}
