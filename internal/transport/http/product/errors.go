package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/catalog-service/internal/app/product/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

// StandardError is the JSON body of every error response.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// mapDomainErrorToStatus converts domain errors to gRPC status codes.
// Internal faults never leak their detail to the caller.
func mapDomainErrorToStatus(err error) *status.Status {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return status.New(codes.NotFound, "product not found")

	case domain.IsValidation(err):
		return status.New(codes.InvalidArgument, err.Error())

	case errors.Is(err, domain.ErrConsistency):
		return status.New(codes.Internal, "internal server error")

	case errors.Is(err, domain.ErrStoreUnavailable):
		return status.New(codes.Unavailable, "product store unavailable, try again later")

	default:
		return status.New(codes.Internal, "internal server error")
	}
}

// httpStatusFromCode maps the codes this package produces to HTTP statuses.
func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	st := mapDomainErrorToStatus(err)
	code := httpStatusFromCode(st.Code())

	if code >= http.StatusInternalServerError {
		logger.From(r.Context()).Error("request failed",
			logger.Path(r.URL.Path),
			logger.Status(code),
			logger.Err(err),
		)
	}

	writeJSON(w, code, StandardError{
		Timestamp: time.Now().UTC(),
		Status:    code,
		Error:     http.StatusText(code),
		Message:   st.Message(),
		Path:      r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.L().Warn("failed to encode response", logger.Err(err))
	}
}
