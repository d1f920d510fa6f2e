package model

type CandidateStatus string

const (
	CandidateApplied   CandidateStatus = "Applied"
	CandidateInterview CandidateStatus = "Interview"
	CandidateHired     CandidateStatus = "Hired"
	CandidateRejected  CandidateStatus = "Rejected"
)

func (s CandidateStatus) IsValid() bool {
	switch s {
	case CandidateApplied, CandidateInterview, CandidateHired, CandidateRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the pipeline has ended for the candidate.
func (s CandidateStatus) IsTerminal() bool {
	return s == CandidateHired || s == CandidateRejected
}

// CanTransition follows the forward-only pipeline
// Applied -> Interview -> Hired, with Rejected reachable from any open stage.
func (s CandidateStatus) CanTransition(to CandidateStatus) bool {
	switch s {
	case CandidateApplied:
		return to == CandidateInterview || to == CandidateRejected
	case CandidateInterview:
		return to == CandidateHired || to == CandidateRejected
	}
	return false
}

type Candidate struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Position string          `gorm:"type:varchar(100);not null" json:"position"`
	OutletID uint            `gorm:"not null;index" json:"outlet_id"`
	Status   CandidateStatus `gorm:"type:varchar(20);not null;default:'Applied'" json:"status"`
}

func (Candidate) TableName() string { return string(TableCandidates) }

type CandidateUpdate struct {
	Status *CandidateStatus
}

func (u CandidateUpdate) Fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Status != nil {
		f["status"] = *u.Status
	}
	return f
}
