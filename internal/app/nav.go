package app

// navKind identifies a navigation signal from the transport pipeline.
type navKind int

const (
	navNotFound navKind = iota
	navServerError
)

// navMsg is delivered to the program when the pipeline signals
// navigation (404 or 500 responses).
type navMsg struct {
	kind navKind
}

// navigator implements session.Navigator by forwarding signals into a
// channel the program drains. Sends never block: the pipeline runs on
// request goroutines and must not stall behind the UI.
type navigator struct {
	ch chan navMsg
}

func newNavigator() *navigator {
	return &navigator{ch: make(chan navMsg, 8)}
}

func (n *navigator) NotFound() {
	select {
	case n.ch <- navMsg{kind: navNotFound}:
	default:
	}
}

func (n *navigator) ServerError() {
	select {
	case n.ch <- navMsg{kind: navServerError}:
	default:
	}
}
