package mailbox

import "regexp"

var alnumRun = regexp.MustCompile(`[A-Za-z0-9]+`)

// ExtractCode returns the first alphanumeric run of exactly six characters
// in text, bounded by non-alphanumerics or the string edges. Returns ""
// when no such run exists. Five- or seven-character runs never match.
func ExtractCode(text string) string {
	for _, run := range alnumRun.FindAllString(text, -1) {
		if len(run) == 6 {
			return run
		}
	}
	return ""
}
