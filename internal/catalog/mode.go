package catalog

// Mode says which backend the Controller is using.
type Mode string

const (
	// ModeChecking is the state before the first probe resolves.
	ModeChecking Mode = "checking"
	// ModeAPI routes operations to the remote API.
	ModeAPI Mode = "api"
	// ModeLocal routes operations to the local store.
	ModeLocal Mode = "local"
)

func (m Mode) String() string {
	return string(m)
}

// Listener receives the new mode after each transition.
type Listener func(Mode)

type subscription struct {
	id       uint64
	listener Listener
}
