package git

import (
	"strconv"
	"strings"
)

// FileStats holds line counts for one file in a diff.
type FileStats struct {
	Path      string
	Additions int
	Deletions int
}

// Stats aggregates a unified diff.
type Stats struct {
	Files     []FileStats
	Additions int
	Deletions int
}

// DiffStats counts added and removed lines per file in unified diff text.
// Files keep the order in which the diff lists them.
func DiffStats(diff string) *Stats {
	stats := &Stats{}
	var current *FileStats
	inHunk := false

	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			stats.Files = append(stats.Files, FileStats{Path: diffPath(line)})
			current = &stats.Files[len(stats.Files)-1]
			inHunk = false
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "@@") {
			inHunk = true
			continue
		}
		if !inHunk {
			// file header: index, mode, ---/+++ lines
			continue
		}

		switch {
		case strings.HasPrefix(line, "+"):
			current.Additions++
			stats.Additions++
		case strings.HasPrefix(line, "-"):
			current.Deletions++
			stats.Deletions++
		}
	}

	return stats
}

// diffPath extracts the post-image path from a "diff --git a/x b/x" header.
func diffPath(header string) string {
	rest := strings.TrimPrefix(header, "diff --git ")
	if idx := strings.LastIndex(rest, " b/"); idx >= 0 {
		return rest[idx+len(" b/"):]
	}
	if parts := strings.Fields(rest); len(parts) > 0 {
		return strings.TrimPrefix(parts[len(parts)-1], "b/")
	}
	return rest
}

// FileCount returns the number of files touched.
func (s *Stats) FileCount() int {
	if s == nil {
		return 0
	}
	return len(s.Files)
}

// FormatCompact returns a compact form like "3 files +120/-45" for spinners
// and summaries. Returns empty string for an empty diff.
func (s *Stats) FormatCompact() string {
	if s.FileCount() == 0 {
		return ""
	}

	noun := "files"
	if len(s.Files) == 1 {
		noun = "file"
	}
	return strconv.Itoa(len(s.Files)) + " " + noun +
		" +" + strconv.Itoa(s.Additions) + "/-" + strconv.Itoa(s.Deletions)
}
