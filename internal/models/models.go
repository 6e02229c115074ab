package models

import (
	"fmt"
	"time"
)

// Status is the review state of an item. An item starts pending and is
// moved exactly once to a terminal status by a reviewer decision; history
// revisions may later rewrite the text of an already-decided item.
type Status string

const (
	StatusPending Status = "pending"
	StatusApprove Status = "approve"
	StatusEdit    Status = "edit"
	StatusReject  Status = "reject"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApprove, StatusEdit, StatusReject:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Terminal reports whether the status is a reviewer decision.
func (s Status) Terminal() bool {
	return s == StatusApprove || s == StatusEdit || s == StatusReject
}

// Decision is a reviewer's verdict on a pending item.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionEdit    Decision = "edit"
	DecisionReject  Decision = "reject"
)

// ParseDecision converts a raw string into a Decision.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApprove, DecisionEdit, DecisionReject:
		return Decision(s), nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// Status returns the item status a decision transitions to.
func (d Decision) Status() Status {
	return Status(d)
}

// Pool identifies one of the two independent review collections. The
// first-stage and second-stage pools never share ids and each gets its
// own queue, progress, history and analytics views.
type Pool string

const (
	PoolFirstStage  Pool = "first_stage"
	PoolSecondStage Pool = "second_stage"
)

// Pools lists every known pool.
var Pools = []Pool{PoolFirstStage, PoolSecondStage}

// ParsePool converts a raw string into a Pool.
func ParsePool(s string) (Pool, error) {
	switch Pool(s) {
	case PoolFirstStage, PoolSecondStage:
		return Pool(s), nil
	}
	return "", fmt.Errorf("unknown pool %q", s)
}

// TableName returns the backing table for a pool.
func (p Pool) TableName() string {
	return "review_items_" + string(p)
}

// ReviewItem is one unit of review work: an original text paired with an
// automatically generated code-switched candidate.
type ReviewItem struct {
	ID            string     `json:"id" db:"id"`
	OriginalText  string     `json:"original_text" db:"original_text"`
	CandidateText string     `json:"candidate_text" db:"candidate_text"`
	CreatorName   string     `json:"creator_name" db:"creator_name"`
	Domain        string     `json:"domain" db:"domain"`
	Status        Status     `json:"status" db:"status"`
	Reviewer      *string    `json:"reviewer,omitempty" db:"reviewer"`
	ReviewedText  *string    `json:"reviewed_text,omitempty" db:"reviewed_text"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
	Pulled        bool       `json:"pulled" db:"pulled"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// UnreviewedKey is the analytics bucket for items without a reviewer.
const UnreviewedKey = "unreviewed"

// ReviewerStats holds per-reviewer counts in an analytics report.
type ReviewerStats struct {
	Reviewer string         `json:"reviewer"`
	Counts   map[Status]int `json:"counts"`
	Total    int            `json:"total"` // approved + edited
}

// AnalyticsReport is the aggregate view over one pool, excluding pulled
// and rejected items.
type AnalyticsReport struct {
	Pool        Pool            `json:"pool"`
	Reviewers   []ReviewerStats `json:"reviewers"` // ascending by Total
	GrandTotal  int             `json:"grand_total"`
	Unreviewed  int             `json:"unreviewed"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Progress is one reviewer's completion summary for a pool.
type Progress struct {
	Pool      Pool   `json:"pool"`
	Reviewer  string `json:"reviewer"`
	Completed int    `json:"completed"` // any terminal decision
	Accepted  int    `json:"accepted"`  // approve + edit only
}

// IngestReport summarizes one bulk ingestion run.
type IngestReport struct {
	RunID    string `json:"run_id"`
	Pool     Pool   `json:"pool"`
	IDPrefix string `json:"id_prefix"`
	Total    int    `json:"total"`
	Inserted int    `json:"inserted"`
}
