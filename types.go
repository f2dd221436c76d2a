package main

// Outcome is the result of visiting a single file.
type Outcome int

const (
	OutcomeUnchanged   Outcome = iota // No occurrences found, nothing written
	OutcomeUnreadable                 // Read or UTF-8 decode failed
	OutcomeModified                   // Content rewritten on disk
	OutcomeWriteFailed                // Content changed but could not be persisted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeModified:
		return "modified"
	case OutcomeWriteFailed:
		return "write-failed"
	default:
		return "unknown"
	}
}

// FileResult holds what happened to one visited file.
type FileResult struct {
	Path         string
	Outcome      Outcome
	Replacements int   // Occurrences replaced across all search strings
	Err          error // *ReadError or *WriteError, nil otherwise
}

// Summary holds the totals of a run.
type Summary struct {
	Root      string // Absolute root that was walked
	Processed int    // Files attempted
	Changed   int    // Files successfully rewritten
	Results   []FileResult
}

// Modified returns the paths of the files rewritten during the run, in visit order.
func (s Summary) Modified() []string {
	var paths []string
	for _, r := range s.Results {
		if r.Outcome == OutcomeModified {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// Failed returns the results that ended in a read or write failure.
func (s Summary) Failed() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if r.Outcome == OutcomeUnreadable || r.Outcome == OutcomeWriteFailed {
			failed = append(failed, r)
		}
	}
	return failed
}
