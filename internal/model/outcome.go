package model

// PhaseStatus is the terminal state of one pipeline phase.
type PhaseStatus string

// Phase statuses.
const (
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// Pipeline phase names, in execution order.
const (
	PhaseBroadResearch       = "broad_research"
	PhaseContactResearch     = "contact_research"
	PhaseCompetitiveAnalysis = "competitive_analysis"
	PhaseRecentActivity      = "recent_activity"
	PhaseStructureOrg        = "structure_org"
	PhasePersistOrg          = "persist_org"
	PhaseStructureContacts   = "structure_contacts"
	PhasePersistContacts     = "persist_contacts"
)

// PhaseResult records the outcome of one pipeline phase.
type PhaseResult struct {
	Name     string      `json:"name"`
	Status   PhaseStatus `json:"status"`
	Duration int64       `json:"duration_ms"`
	Error    string      `json:"error,omitempty"`
}

// Outcome is the per-target result of a research run. A batch always
// yields exactly one Outcome per requested target, failed or not.
type Outcome struct {
	Name               string        `json:"name"`
	CompanyID          int64         `json:"company_id,omitempty"`
	FitScore           *int          `json:"fit_score,omitempty"`
	RecommendedProduct string        `json:"recommended_product,omitempty"`
	Priority           string        `json:"priority,omitempty"`
	QualityScore       int           `json:"quality_score"`
	Readiness          int           `json:"readiness_pct"`
	ContactsSaved      int           `json:"contacts_saved"`
	Phases             []PhaseResult `json:"phases,omitempty"`
	Error              string        `json:"error,omitempty"`
}

// Failed reports whether the run produced only a placeholder record.
func (o Outcome) Failed() bool {
	return o.Error != ""
}
