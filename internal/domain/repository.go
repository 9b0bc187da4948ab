// Package domain provides the shared value types of the commit-assistance pipeline.
package domain

// FileState classifies one path in the working tree.
type FileState string

const (
	// FileStaged means the index differs from HEAD for the path.
	FileStaged FileState = "staged"

	// FileUnstaged means the working tree differs from the index for the path.
	FileUnstaged FileState = "unstaged"

	// FileUntracked means git does not track the path.
	FileUntracked FileState = "untracked"
)

// String returns the string representation of the FileState.
func (s FileState) String() string {
	return string(s)
}

// FileStatusEntry is one line of the repository status listing.
// A path staged and then modified again appears twice, once per state.
type FileStatusEntry struct {
	Path  string    `json:"path"`
	State FileState `json:"state"`
}

// DiffPayload is the exact text of a staged diff together with its size.
// ByteSize always equals len(Text); use NewDiffPayload to build one.
type DiffPayload struct {
	Text     string `json:"text"`
	ByteSize int    `json:"byte_size"`
}

// NewDiffPayload wraps diff text without altering it.
func NewDiffPayload(text string) DiffPayload {
	return DiffPayload{Text: text, ByteSize: len(text)}
}

// IsEmpty reports whether nothing is staged.
func (d DiffPayload) IsEmpty() bool {
	return d.ByteSize == 0
}
