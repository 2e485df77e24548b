package models

// TriState is the per-day state of a single tracked item.
type TriState int

const (
	Unset TriState = iota
	Yes
	No
)

// Next advances the state along the single toggle cycle:
// Unset -> Yes -> No -> Unset.
func (t TriState) Next() TriState {
	switch t {
	case Unset:
		return Yes
	case Yes:
		return No
	default:
		return Unset
	}
}

func (t TriState) String() string {
	switch t {
	case Yes:
		return "Yes"
	case No:
		return "No"
	default:
		return "-"
	}
}

// FromBool maps a stored boolean onto its tri-state.
func FromBool(b bool) TriState {
	if b {
		return Yes
	}
	return No
}

// Bool returns the boolean to store for this state. ok is false for Unset,
// which is never written.
func (t TriState) Bool() (value, ok bool) {
	switch t {
	case Yes:
		return true, true
	case No:
		return false, true
	default:
		return false, false
	}
}
