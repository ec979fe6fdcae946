package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/dropsight-backend/pkg/errors"
	"go.uber.org/multierr"
)

// LevelInput is one parsed baseline row.
type LevelInput struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// ParseCSV reads a `variant_id,quantity` file with a header row. Malformed
// rows are collected rather than aborting the import; the caller receives
// every valid row plus a combined error describing each rejected line.
func ParseCSV(r io.Reader) ([]LevelInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv file is empty")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read csv header")
	}
	if len(header) < 2 ||
		!strings.EqualFold(strings.TrimSpace(header[0]), "variant_id") ||
		!strings.EqualFold(strings.TrimSpace(header[1]), "quantity") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv header must be variant_id,quantity")
	}

	var (
		out     []LevelInput
		rowErrs error
		line    = 1
	)
	seen := make(map[string]int)
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(record) < 2 {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(record)))
			continue
		}

		variantID := strings.TrimSpace(record[0])
		if variantID == "" {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: variant id is empty", line))
			continue
		}

		qty, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: quantity %q is not an integer", line, record[1]))
			continue
		}
		if qty < 0 {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("line %d: quantity must not be negative", line))
			continue
		}

		// Last occurrence wins for duplicate variant ids.
		if idx, dup := seen[variantID]; dup {
			out[idx].Quantity = qty
			continue
		}
		seen[variantID] = len(out)
		out = append(out, LevelInput{VariantID: variantID, Quantity: qty})
	}

	if rowErrs != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeValidation, rowErrs, "csv import had invalid rows").
			WithDetails(errorLines(rowErrs))
	}
	return out, nil
}

func errorLines(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
