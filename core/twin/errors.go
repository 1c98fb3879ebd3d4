package twin

import "fmt"

// InvalidInputError reports a recoverable validation or range failure in a
// PatientInput — the caller should correct the request and retry.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// NewInvalidInput builds an InvalidInputError.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// CriticalConditionError reports a vital sign beyond the tool's competence:
// the condition requires immediate clinical escalation, not a fluid
// calculation. Raised by BuildParams for SBP<40, SpO2<80, or Hb<4.
type CriticalConditionError struct {
	Reason string
}

func (e *CriticalConditionError) Error() string {
	return fmt.Sprintf("critical condition: %s", e.Reason)
}

// NewCriticalCondition builds a CriticalConditionError.
func NewCriticalCondition(reason string) error {
	return &CriticalConditionError{Reason: reason}
}

// DegenerateGeometryError is raised by InitState when the derived
// intracellular volume collapses below the physically meaningful floor.
type DegenerateGeometryError struct {
	ICFLiters float64
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: derived ICF volume %.3f L below 0.1 L floor", e.ICFLiters)
}
