package dto

// ReconcileReport summarizes one reconciliation run. Re-running against an
// already-consistent projection yields all zeroes.
type ReconcileReport struct {
	DriftRepaired   int `json:"driftRepaired"`
	StatusRepaired  int `json:"statusRepaired"`
	RowsBackfilled  int `json:"rowsBackfilled"`
	MonthsRebuilt   int `json:"monthsRebuilt"`
	EventsInspected int `json:"eventsInspected"`
}
