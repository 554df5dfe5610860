package cue

import (
	"regexp"
	"strconv"
	"strings"

	"cuebridge/internal/domain"
)

// positionPattern matches one indented position line of `cue vet` output:
// exactly four leading spaces, arbitrary content, then :line:column.
var positionPattern = regexp.MustCompile(`^ {4}.*:(\d+):(\d+)$`)

// groupIndent is the prefix that marks a line as belonging to the preceding
// message header. Headers are exactly the lines that do not carry it.
const groupIndent = "   "

// VetOutputParser reconstructs structured diagnostics from the line-oriented
// output of the check subcommand. The tool emits one unindented free-text
// message line followed by zero or more indented position lines:
//
//	missing ',' before newline in list literal:
//	    ./LintingErrors.cue:7:1
//	missing ',' in list literal:
//	    ./LintingErrors.cue:9:3
//
// The zero value is not usable; construct with NewVetOutputParser.
type VetOutputParser struct {
	position *regexp.Regexp
	indent   string
}

// NewVetOutputParser creates a parser for the cue vet output format.
func NewVetOutputParser() *VetOutputParser {
	return &VetOutputParser{position: positionPattern, indent: groupIndent}
}

// NewCustomParser creates a parser with a swapped position pattern and
// indent prefix, for tools whose output deviates from the cue format. The
// pattern must capture the line number in group 1 and the column in group 2.
func NewCustomParser(position *regexp.Regexp, indent string) *VetOutputParser {
	return &VetOutputParser{position: position, indent: indent}
}

// Parse converts raw check output into diagnostics anchored to file. The
// first line always starts a group; every later unindented line starts the
// next one. Within a group the first line is the message verbatim, and each
// following line matching the position pattern yields one record. Lines that
// match nothing are dropped silently — the parser has no failure mode.
// Output order preserves input order.
func (p *VetOutputParser) Parse(file string, raw string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	var message string
	for i, line := range splitLines(raw) {
		if i == 0 || !strings.HasPrefix(line, p.indent) {
			message = line
			continue
		}
		m := p.position.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNo, errLine := strconv.Atoi(m[1])
		colNo, errCol := strconv.Atoi(m[2])
		if errLine != nil || errCol != nil || lineNo < 1 || colNo < 1 {
			continue
		}
		diags = append(diags, domain.Diagnostic{
			File:    file,
			Line:    lineNo,
			Column:  colNo,
			Message: message,
		})
	}
	return diags
}

// splitLines splits raw output into lines, accepting LF and CRLF endings.
func splitLines(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}
