package errors

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// ErrorHandler recovers panics from next and answers with an InternalError.
// The request ID is taken from the response when an earlier middleware set
// one, else from the inbound header.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					requestID := w.Header().Get("X-Request-ID")
					if requestID == "" {
						requestID = r.Header.Get("X-Request-ID")
					}
					logger.Error("panic recovered",
						zap.Any("error", err),
						zap.ByteString("stacktrace", debug.Stack()),
						zap.String("request_id", requestID),
					)
					WriteError(w, NewInternalError(requestID, nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// LogError logs err with the fields of a CherikiError when it is one.
func LogError(logger *zap.Logger, err error, requestID string) {
	var cerr *CherikiError
	if As(err, &cerr) {
		fields := []zap.Field{
			zap.String("error_type", string(cerr.Type)),
			zap.String("message", cerr.Message),
			zap.Int("code", cerr.Code),
			zap.String("request_id", requestID),
			zap.Any("details", cerr.Details),
		}
		if cerr.err != nil {
			fields = append(fields, zap.Error(cerr.err))
		}
		if cerr.Code >= http.StatusInternalServerError {
			logger.Error("request error", fields...)
		} else {
			logger.Warn("request error", fields...)
		}
		return
	}
	logger.Error("unexpected error",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
}
