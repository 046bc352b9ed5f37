package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/middleware"
	"github.com/andreasstove999/table-ordering/internal/order"
	"github.com/andreasstove999/table-ordering/internal/user"
)

// writeServiceError maps domain sentinels to status codes. Anything it does
// not recognise is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidArgument),
		errors.Is(err, catalog.ErrInvalidArgument),
		errors.Is(err, user.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, user.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrInvalidReference),
		errors.Is(err, catalog.ErrInvalidReference):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Printf("%s %s cid=%s: %v", r.Method, r.URL.Path, middleware.GetCorrelationID(r.Context()), err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
