package sim

import (
	"errors"
	"fmt"
)

// ErrExtinct is returned by Step once the lineage has died out. The
// extinction itself is a normal end state; it is reported on the final
// snapshot, and this sentinel only guards further turn advances.
var ErrExtinct = errors.New("sim: lineage extinct")

// InsufficientEPError rejects an EP spend the lineage cannot afford. The
// spend is a no-op: balance and base genome are left unchanged.
type InsufficientEPError struct {
	Required  float64
	Available float64
}

func (e *InsufficientEPError) Error() string {
	return fmt.Sprintf("sim: insufficient EP: need %g, have %g", e.Required, e.Available)
}
