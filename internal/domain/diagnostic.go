package domain

// Diagnostic is one structured finding reported by the check subcommand.
// File is always the file the caller asked to check; paths embedded in the
// tool's own output are never trusted. Line and Column are 1-based.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}
