package strength

import "encoding/json"

// Label is the qualitative rating derived from a score. Labels are ordered,
// so they can be compared.
type Label int

const (
	VeryWeak Label = iota
	Weak
	Good
	Strong
	Excellent
)

var labels = [...]string{"Very weak", "Weak", "Good", "Strong", "Excellent"}

// Labels lists every label from weakest to strongest.
func Labels() []Label {
	return []Label{VeryWeak, Weak, Good, Strong, Excellent}
}

// LabelFor maps a score to its label, checking the highest threshold first.
func LabelFor(score int) Label {
	switch {
	case score >= 85:
		return Excellent
	case score >= 70:
		return Strong
	case score >= 50:
		return Good
	case score >= 30:
		return Weak
	default:
		return VeryWeak
	}
}

func (l Label) String() string {
	if l < VeryWeak || l > Excellent {
		return "Unknown"
	}
	return labels[l]
}

func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
