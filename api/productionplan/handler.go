package productionplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kilianp07/productionplan/core/dispatch"
	"github.com/kilianp07/productionplan/core/model"
	coremon "github.com/kilianp07/productionplan/core/monitoring"
)

// maxBodyBytes bounds the accepted request size.
const maxBodyBytes = 1 << 20

// Planner computes a plan for a request. *dispatch.PlanManager implements it.
type Planner interface {
	Plan(ctx context.Context, req model.PlanRequest) (dispatch.Result, error)
}

// NewHandler returns an HTTP handler computing production plans via
// POST /productionplan. Rejected requests get a 400 with a plain-text reason.
func NewHandler(p Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				coremon.CaptureException(fmt.Errorf("panic: %v", rec), map[string]string{"module": "api"})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := DecodePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := p.Plan(r.Context(), req)
		if err != nil {
			if isClientError(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			coremon.CaptureException(err, map[string]string{"module": "api"})
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res.Allocation.Productions()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func isClientError(err error) bool {
	return errors.Is(err, dispatch.ErrInvalidLoad) ||
		errors.Is(err, dispatch.ErrInsufficientCapacity) ||
		errors.Is(err, model.ErrUnrecognizedPlantKind)
}
