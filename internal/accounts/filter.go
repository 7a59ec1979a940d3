package accounts

import "strings"

// Filter selects a subsequence of the store. Term is matched
// case-insensitively against username, email, password and notes; the Show*
// toggles each hide one status category when false. Free means
// not-legendary.
type Filter struct {
	Term string

	ShowLegendary  bool
	ShowBanned     bool
	ShowTempBanned bool
	ShowFree       bool
}

// ShowAll returns the neutral filter: no term, every category visible.
func ShowAll() Filter {
	return Filter{
		ShowLegendary:  true,
		ShowBanned:     true,
		ShowTempBanned: true,
		ShowFree:       true,
	}
}

// Active reports whether the filter narrows the collection at all. Callers
// use it to decide between rendering the filtered view and the full one.
func (f Filter) Active() bool {
	return f.Term != "" || !f.ShowLegendary || !f.ShowBanned || !f.ShowTempBanned || !f.ShowFree
}

func (f Filter) matches(a *Account) bool {
	if a.IsLegendary && !f.ShowLegendary {
		return false
	}
	if !a.IsLegendary && !f.ShowFree {
		return false
	}
	if a.IsBanned && !f.ShowBanned {
		return false
	}
	if a.IsTempBanned && !f.ShowTempBanned {
		return false
	}

	if f.Term == "" {
		return true
	}
	// The legendary/free status word is searchable alongside the text
	// fields, so "legendary" finds tagged records without a note saying so.
	status := "free"
	if a.IsLegendary {
		status = "legendary"
	}

	term := strings.ToLower(f.Term)
	for _, field := range []string{a.Username, a.Email, a.Password, a.Notes, status} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
