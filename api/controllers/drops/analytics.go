package drops

import (
	"net/http"

	"github.com/angelmondragon/dropsight-backend/api/responses"
	"github.com/angelmondragon/dropsight-backend/api/validators"
	"github.com/angelmondragon/dropsight-backend/internal/analytics"
	"github.com/angelmondragon/dropsight-backend/internal/engine"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/angelmondragon/dropsight-backend/pkg/logger"
)

// Analytics runs the full engine for a drop and returns aggregates, score,
// and rankings in one payload.
func Analytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysis, ok := analyze(svc, logg, w, r)
		if !ok {
			return
		}
		responses.WriteSuccess(w, analysis)
	}
}

// Score returns only the weighted performance score for a drop.
func Score(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysis, ok := analyze(svc, logg, w, r)
		if !ok {
			return
		}
		responses.WriteSuccess(w, analysis.Score)
	}
}

// Rankings returns only the tiered product rankings for a drop.
func Rankings(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		analysis, ok := analyze(svc, logg, w, r)
		if !ok {
			return
		}
		responses.WriteSuccess(w, analysis.Rankings)
	}
}

// analyze writes the error response itself; the boolean reports whether the
// caller has a result to render.
func analyze(svc analytics.Service, logg *logger.Logger, w http.ResponseWriter, r *http.Request) (*engine.Analysis, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
		return nil, false
	}

	id, err := validators.UUIDParam(r, "dropId")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return nil, false
	}

	ctx := r.Context()
	if logg != nil {
		ctx = logg.WithDropID(ctx, id.String())
	}

	analysis, err := svc.AnalyzeDrop(ctx, id)
	if err != nil {
		responses.WriteError(ctx, logg, w, err)
		return nil, false
	}
	return analysis, true
}
