package models

import "time"

// Default contested roles, in the order students vote them
const (
	RolePersonero = "Personero"
	RoleContralor = "Contralor"
)

// Session status values
const (
	SessionAuthenticated = "authenticated"
	SessionAlreadyVoted  = "already_voted"
)

// Vote outcome values
const (
	VoteAccepted     = "accepted"
	VoteAlreadyVoted = "already_voted"
)

// Request types

type RegisterCandidateRequest struct {
	DisplayName     string `json:"display_name"`
	Grade           string `json:"grade"`
	Role            string `json:"role"`
	Proposal        string `json:"proposal"`
	PhotoRef        string `json:"photo_ref"`
	RunningMateName string `json:"running_mate_name"`
}

type ImportStudentsRequest struct {
	Rows []RosterRow `json:"rows"`
}

// RosterRow is one line of the student roster as delivered by the
// spreadsheet import layer. All four fields are required.
type RosterRow struct {
	DocID     string `json:"doc_id"`
	FullName  string `json:"full_name"`
	Grade     string `json:"grade"`
	GroupName string `json:"group_name"`
}

type AuthenticateRequest struct {
	Token string `json:"token"`
}

type CastVoteRequest struct {
	Role        string `json:"role"`
	CandidateID string `json:"candidate_id"`
}

// Response types

type RegisterCandidateResponse struct {
	Candidate Candidate `json:"candidate"`
}

// ImportReport summarizes a roster import, one outcome per row.
type ImportReport struct {
	Total  int                `json:"total"`
	Issued []IssuedCredential `json:"issued"`
	Failed []RowError         `json:"failed"`
}

// IssuedCredential is the payload the QR/certificate renderer consumes.
type IssuedCredential struct {
	DocID     string `json:"doc_id"`
	FullName  string `json:"full_name"`
	Grade     string `json:"grade"`
	GroupName string `json:"group_name"`
	Username  string `json:"username"`
	Token     string `json:"token"`
}

type RowError struct {
	RowIndex int    `json:"row_index"`
	DocID    string `json:"doc_id"`
	Reason   string `json:"reason"`
}

type AuthenticateResponse struct {
	Status       string   `json:"status"`
	Username     string   `json:"username"`
	FullName     string   `json:"full_name"`
	Grade        string   `json:"grade"`
	GroupName    string   `json:"group_name"`
	NextRole     string   `json:"next_role,omitempty"`
	PendingRoles []string `json:"pending_roles,omitempty"`
}

type CastVoteResponse struct {
	Status    string `json:"status"`
	Role      string `json:"role"`
	NextRole  string `json:"next_role,omitempty"`
	Completed bool   `json:"completed"`
}

type SummaryResponse struct {
	Students   int      `json:"students"`
	Completed  int      `json:"completed"`
	Candidates int      `json:"candidates"`
	Roles      []string `json:"roles"`
}

type ResultsResponse struct {
	Results []Tally `json:"results"`
}

// Domain types

type Student struct {
	ID          string     `json:"id"`
	DocID       string     `json:"doc_id"`
	FullName    string     `json:"full_name"`
	Grade       string     `json:"grade"`
	GroupName   string     `json:"group_name"`
	Username    string     `json:"username"`
	Token       string     `json:"-"` // Never expose in listings
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Candidate struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"display_name"`
	Grade           string    `json:"grade,omitempty"`
	Role            string    `json:"role"`
	Proposal        string    `json:"proposal,omitempty"`
	PhotoRef        string    `json:"photo_ref,omitempty"`
	RunningMateName string    `json:"running_mate_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// BallotEntry is one committed vote. Entries are append-only: once
// written they are never updated or deleted.
type BallotEntry struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Role        string    `json:"role"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
}

// Tally types

type CandidateCount struct {
	CandidateID     string `json:"candidate_id"`
	DisplayName     string `json:"display_name"`
	RunningMateName string `json:"running_mate_name,omitempty"`
	Votes           int    `json:"votes"`
}

// Tally reports raw counts only. Equal counts are reported as-is; naming
// a winner is the consumer's concern.
type Tally struct {
	Role          string           `json:"role"`
	Candidates    []CandidateCount `json:"candidates"`
	VotedCount    int              `json:"voted_count"`
	EligibleCount int              `json:"eligible_count"`
	Turnout       float64          `json:"turnout"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
