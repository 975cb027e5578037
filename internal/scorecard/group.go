// Package scorecard handles the hackathon scorecard CSVs: parsing group
// rows and their submission links, loading the syllabus and the reference
// cohort scores, and writing computed scores and ranking positions back.
package scorecard

// SubmissionKind classifies how a group's project link points at code.
type SubmissionKind int

const (
	// SubmissionNone means the group has no usable project link.
	SubmissionNone SubmissionKind = iota
	// SubmissionBranch points at a branch (possibly with a subdirectory).
	SubmissionBranch
	// SubmissionCommit points at a specific commit hash.
	SubmissionCommit
	// SubmissionZip points at a .zip blob committed to the repo.
	SubmissionZip
)

// String returns a readable name for the submission kind.
func (k SubmissionKind) String() string {
	switch k {
	case SubmissionBranch:
		return "branch"
	case SubmissionCommit:
		return "commit"
	case SubmissionZip:
		return "zip"
	default:
		return "none"
	}
}

// Group holds one scorecard row's submission metadata.
type Group struct {
	Number      int
	ProjectLink string
	VideoLink   string

	// Ref is the branch name or commit hash extracted from the link.
	// Empty when the group has no submission.
	Ref string
	// Path is the subdirectory or zip path inside the repo, if any.
	Path string
	Kind SubmissionKind
}

// HasSubmission reports whether the group submitted anything reviewable.
func (g Group) HasSubmission() bool {
	return g.Kind != SubmissionNone
}

// OnDefaultBranch reports whether the submission lives on the main branch,
// which allows reading it from the local checkout instead of git history.
func (g Group) OnDefaultBranch() bool {
	return g.Kind == SubmissionBranch && g.Ref == "main"
}
