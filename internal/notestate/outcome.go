package notestate

import "fmt"

// Outcome tells a caller what a transition actually did. Rejected and Ignored
// always hand back the input state; Missed never touches the collections.
type Outcome int

const (
	Applied Outcome = iota
	// Missed means the referenced id was not found.
	Missed
	// Rejected means the action was well-formed but its precondition failed.
	Rejected
	// Ignored means the action type is not part of the action set.
	Ignored
)

var outcomeNames = map[Outcome]string{
	Applied:  "applied",
	Missed:   "missed",
	Rejected: "rejected",
	Ignored:  "ignored",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for k, v := range outcomeNames {
		if v == string(text) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}
