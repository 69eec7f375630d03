package assembler

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	schemaViolationCode = "REPORT_SCHEMA_VIOLATION"
	invalidVariantCode  = "REPORT_VARIANT_INVALID"
)

// ErrInvalidVariant is returned when a variant names a field kind or strategy
// that does not exist. Variants loaded through a registry never do.
var ErrInvalidVariant = errors.New("assembler: invalid variant")

// SchemaViolation reports a field whose item count differs from the exact
// cardinality its variant declares.
type SchemaViolation struct {
	Field    string
	Expected int
	Actual   int
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation: field %q expected %d entries, got %d", e.Field, e.Expected, e.Actual)
}

// AsSchemaViolation unwraps err to a SchemaViolation.
func AsSchemaViolation(err error) (*SchemaViolation, bool) {
	var violation *SchemaViolation
	if errors.As(err, &violation) {
		return violation, true
	}
	return nil, false
}

func wrapSchemaViolation(violation *SchemaViolation) error {
	return goerrors.Wrap(violation, goerrors.CategoryValidation, "report schema violation").
		WithTextCode(schemaViolationCode)
}

func wrapInvalidVariant(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(fmt.Errorf("%w: %w", ErrInvalidVariant, err), goerrors.CategoryValidation, "report variant invalid").
		WithTextCode(invalidVariantCode)
}
