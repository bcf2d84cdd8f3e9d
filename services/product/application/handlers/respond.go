package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/supermarket/pkg/errhttp"
	"github.com/ghuser/supermarket/pkg/httpx"
	"github.com/ghuser/supermarket/pkg/telemetry"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
)

// writeResponse translates a service Response: Ok writes the payload with
// okStatus, anything else goes through errhttp. Internal errors are also
// reported to Sentry.
func writeResponse(w http.ResponseWriter, r *http.Request, resp appsvcs.Response, okStatus int, isProduction bool) {
	switch resp.Outcome {
	case appsvcs.OutcomeOk:
		httpx.JSON(w, okStatus, resp.Payload)
		return
	case appsvcs.OutcomeInternalError:
		telemetry.CaptureError(r.Context(), resp.Err)
	}
	errhttp.WriteError(w, resp.Err, isProduction)
}

// productID reads the {id} path parameter, writing a 400 when it is not an integer.
func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "product id must be an integer")
		return 0, false
	}
	return id, true
}
