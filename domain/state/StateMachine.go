package state

type Category uint

const (
	InDraft Category = iota
	InReview
	InProcess
	Done
)

type State struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

type Transition struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// stateless object, just used for state computing
type StateMachine struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions"`
}

func NewStateMachine(states []State, transitions []Transition) *StateMachine {
	return &StateMachine{States: states, Transitions: transitions}
}

func (sm *StateMachine) FindState(name string) (State, bool) {
	for _, s := range sm.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

func (sm *StateMachine) AvailableTransitions(fromState string, toState string) []Transition {
	r := []Transition{}
	for _, transition := range sm.Transitions {
		if (fromState == "" || fromState == transition.From) && (toState == "" || toState == transition.To) {
			r = append(r, transition)
		}
	}
	return r
}

// NextStates lists the names of states directly reachable from the given state.
func (sm *StateMachine) NextStates(fromState string) []string {
	r := []string{}
	for _, transition := range sm.Transitions {
		if transition.From == fromState {
			r = append(r, transition.To)
		}
	}
	return r
}

func (sm *StateMachine) HasTransition(fromState string, toState string) bool {
	for _, transition := range sm.Transitions {
		if transition.From == fromState && transition.To == toState {
			return true
		}
	}
	return false
}
