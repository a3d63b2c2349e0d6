package definitions

// ArbiterState tracks how far an arbitration has progressed.
type ArbiterState int

const (
	StatePending ArbiterState = iota
	StateDelegatedToScreenResolver
	StateOfferedToConsent
	StateDelegatedToConsent
	StateDeciding
	StateResolved
	StateAbandonedNoFrame
)

func (s ArbiterState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDelegatedToScreenResolver:
		return "delegated_to_screen_resolver"
	case StateOfferedToConsent:
		return "offered_to_consent"
	case StateDelegatedToConsent:
		return "delegated_to_consent"
	case StateDeciding:
		return "deciding"
	case StateResolved:
		return "resolved"
	case StateAbandonedNoFrame:
		return "abandoned_no_frame"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s ArbiterState) Terminal() bool {
	return s == StateResolved || s == StateAbandonedNoFrame
}
