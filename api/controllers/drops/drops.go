package drops

import (
	"net/http"

	"github.com/angelmondragon/dropsight-backend/api/responses"
	"github.com/angelmondragon/dropsight-backend/api/validators"
	internaldrops "github.com/angelmondragon/dropsight-backend/internal/drops"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/angelmondragon/dropsight-backend/pkg/logger"
)

// Create schedules a new drop.
func Create(svc internaldrops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drops service unavailable"))
			return
		}

		var input internaldrops.CreateDropInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drop, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internaldrops.ToResponse(drop))
	}
}

// List returns every drop for the requested shop.
func List(svc internaldrops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drops service unavailable"))
			return
		}

		shopID, err := validators.RequiredQuery(r, "shop_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithShopID(ctx, shopID)
		}

		list, err := svc.List(ctx, shopID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out := make([]internaldrops.DropResponse, 0, len(list))
		for i := range list {
			out = append(out, internaldrops.ToResponse(&list[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// Get returns a single drop by id.
func Get(svc internaldrops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drops service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "dropId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drop, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internaldrops.ToResponse(drop))
	}
}

// Update patches a drop's name or window.
func Update(svc internaldrops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drops service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "dropId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input internaldrops.UpdateDropInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drop, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internaldrops.ToResponse(drop))
	}
}

// Delete removes a drop and its inventory snapshot.
func Delete(svc internaldrops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "drops service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "dropId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
