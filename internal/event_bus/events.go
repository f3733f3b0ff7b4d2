package event_bus

// StateChanged is published after every mutation of the dashboard state so
// that persistence runs as a side effect of the change, not inline with it.
const StateChanged EventType = "state.changed"

// StateChangedPayload carries the state that was just committed.
type StateChangedPayload struct {
	AnnualIncome int
	Donations    int
}
