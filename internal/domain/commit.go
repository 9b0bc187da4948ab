package domain

// CommitOutcomeKind tags the variant held by a CommitOutcome.
type CommitOutcomeKind string

const (
	// CommitCommitted means git recorded a new commit.
	CommitCommitted CommitOutcomeKind = "committed"

	// CommitRejected means git (or the blank-message check) refused the commit.
	CommitRejected CommitOutcomeKind = "rejected"

	// CommitAborted means the commit was cancelled or declined before git finished.
	CommitAborted CommitOutcomeKind = "aborted"
)

// RejectEmptyMessage is the rejection reason for a blank commit message.
const RejectEmptyMessage = "empty message"

// CommitOutcome is the result of a commit attempt.
// Hash and Summary are set for committed; Reason for rejected.
type CommitOutcome struct {
	Kind    CommitOutcomeKind `json:"kind"`
	Hash    string            `json:"hash,omitempty"`
	Summary string            `json:"summary,omitempty"`
	Reason  string            `json:"reason,omitempty"`
}

// Committed builds a committed outcome.
func Committed(hash, summary string) CommitOutcome {
	return CommitOutcome{Kind: CommitCommitted, Hash: hash, Summary: summary}
}

// Rejected builds a rejected outcome carrying git's own explanation.
func Rejected(reason string) CommitOutcome {
	return CommitOutcome{Kind: CommitRejected, Reason: reason}
}

// Aborted builds an aborted outcome.
func Aborted() CommitOutcome {
	return CommitOutcome{Kind: CommitAborted}
}

// CommitSummary is one entry of the recent commit history.
type CommitSummary struct {
	Hash    string `json:"hash"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}
