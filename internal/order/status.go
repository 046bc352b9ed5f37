package order

type State string

const (
	StateDraft     State = "draft"
	StateOpen      State = "open"
	StateConcluded State = "concluded"
)

// State derives the lifecycle state from the draft/status flags.
// status=true wins: a concluded order is terminal whatever draft says.
func (o Order) State() State {
	switch {
	case o.Status:
		return StateConcluded
	case o.Draft:
		return StateDraft
	default:
		return StateOpen
	}
}

func stateOf(draft, status bool) State {
	return Order{Draft: draft, Status: status}.State()
}
