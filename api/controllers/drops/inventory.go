package drops

import (
	"net/http"

	"github.com/angelmondragon/dropsight-backend/api/responses"
	"github.com/angelmondragon/dropsight-backend/api/validators"
	internalinventory "github.com/angelmondragon/dropsight-backend/internal/inventory"
	"github.com/angelmondragon/dropsight-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"github.com/angelmondragon/dropsight-backend/pkg/logger"
)

const maxCSVImportBytes = 5 << 20

type setInventoryRequest struct {
	Levels []internalinventory.LevelInput `json:"levels" validate:"required,min=1,dive"`
}

// ListInventory returns the drop's baseline snapshot rows.
func ListInventory(svc internalinventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "dropId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		levels, err := svc.List(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, levels)
	}
}

// SetInventory replaces or patches baseline rows by hand.
func SetInventory(svc internalinventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "dropId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setInventoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetLevels(r.Context(), id, req.Levels, models.InventorySourceManual); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"stored": len(req.Levels)})
	}
}

// ImportInventoryCSV ingests a variant_id,quantity file as the baseline
// snapshot. Partial imports succeed; rejected rows come back in the details.
func ImportInventoryCSV(svc internalinventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		id, err := validators.UUIDParam(r, "dropId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := svc.ImportCSV(r.Context(), id, http.MaxBytesReader(w, r.Body, maxCSVImportBytes))
		if err != nil && stored == 0 {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{"stored": stored}
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Details() != nil {
				payload["rejected_rows"] = typed.Details()
			}
		}
		responses.WriteSuccess(w, payload)
	}
}
