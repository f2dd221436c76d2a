package main

import "github.com/atotto/clipboard"

// clipboardWriter is swapped out in tests; headless CI has no clipboard.
var clipboardWriter = clipboard.WriteAll

// copySummary puts the totals block on the system clipboard.
func copySummary(summary Summary) error {
	return clipboardWriter(formatTotals(summary))
}
