package dto

import (
	"github.com/demandcast/demandcast/pkg/domain/entities"
)

// ResolveDiagnostics counts the row-local exclusions of a resolve pass.
// Exclusions are observability data, never fatal; a run with a nonzero gap
// count is still a complete run.
type ResolveDiagnostics struct {
	LinesSeen         int `json:"lines_seen"`
	RowsResolved      int `json:"rows_resolved"`
	ReferenceGaps     int `json:"reference_gaps"`
	InvalidQuantities int `json:"invalid_quantities"`
	DualPathConflicts int `json:"dual_path_conflicts"`
}

// PipelineResult contains the complete output of a pipeline run
type PipelineResult struct {
	Matrix      *entities.DemandMatrix  `json:"-"`
	Demand      []*entities.DailyDemand `json:"-"`
	Diagnostics ResolveDiagnostics      `json:"diagnostics"`
}
