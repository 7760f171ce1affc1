package strength

import "fmt"

// AllMetTip is the only tip returned when every criterion is satisfied.
const AllMetTip = "Looks great! This password meets every criterion."

// Tips returns one remediation tip per unmet criterion, always in the same
// order: length, uppercase, lowercase, digit, symbol, weak pattern.
func Tips(c Criteria) []string {
	if c.All() {
		return []string{AllMetTip}
	}

	tips := make([]string, 0, 6)
	if !c.Length {
		tips = append(tips, fmt.Sprintf("Use at least %d characters.", MinLength))
	}
	if !c.Upper {
		tips = append(tips, "Add an uppercase letter (A-Z).")
	}
	if !c.Lower {
		tips = append(tips, "Add a lowercase letter (a-z).")
	}
	if !c.Digit {
		tips = append(tips, "Add a number (0-9).")
	}
	if !c.Symbol {
		tips = append(tips, "Add a symbol like ! @ # or %.")
	}
	if !c.Uncommon {
		tips = append(tips, "Avoid common words, repeated characters and keyboard sequences.")
	}
	return tips
}
