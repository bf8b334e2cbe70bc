package argsel

import "strings"

// DirectivePrefix starts a line comment that suppresses findings on its own
// line or the line below it.
const DirectivePrefix = "//argsel:ignore"

// IgnoreDirective reports whether comment text is a suppression directive
// covering check. A bare directive covers every check; otherwise the first
// word is a comma separated list of check names and the rest is free text:
//
//	//argsel:ignore
//	//argsel:ignore structorder,argselection generated layout
func IgnoreDirective(text, check string) bool {
	rest, ok := strings.CutPrefix(text, DirectivePrefix)
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return true
	}
	for _, name := range strings.Split(strings.Fields(rest)[0], ",") {
		if name == check {
			return true
		}
	}
	return false
}
