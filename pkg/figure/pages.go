package figure

import (
	"fmt"
	"regexp"
	"strings"
)

// diagramName extracts the declared page name from a <diagram> line. Names
// containing characters outside [\w-] (spaces, unicode punctuation) do not
// match and fall back to a positional label.
var diagramName = regexp.MustCompile(`^\s*<diagram.*name="([\w-]*)".*>`)

// Pages scans a drawio document's raw text and returns the ordered list of
// page suffixes used to derive artifact names.
//
// Zero or one <diagram> marker yields a single empty suffix (no
// disambiguation needed). With two or more markers, each page gets
// "-<name>" when the marker declares a name, or "-page-<n>" (1-based
// position in document order) when it does not. The slice index of each
// suffix is the 0-based page index passed to the export tool; that
// correspondence is load-bearing.
func Pages(content string) []string {
	var markers []string
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "<diagram") {
			markers = append(markers, line)
		}
	}

	if len(markers) <= 1 {
		return []string{""}
	}

	suffixes := make([]string, 0, len(markers))
	for _, line := range markers {
		if m := diagramName.FindStringSubmatch(line); m != nil {
			suffixes = append(suffixes, "-"+m[1])
		} else {
			suffixes = append(suffixes, fmt.Sprintf("-page-%d", len(suffixes)+1))
		}
	}
	return suffixes
}
