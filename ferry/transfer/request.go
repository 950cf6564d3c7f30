package transfer

// Request selects the direction of one transfer. It is either a Push or a
// Pull; no other implementations exist.
type Request interface {
	// Path returns the local file the request reads from or writes to.
	Path() string
	isRequest()
}

// Push sends the local file Source to the peer.
type Push struct {
	Source string
}

func (p Push) Path() string { return p.Source }
func (Push) isRequest()     {}

// Pull receives a file from the peer into Destination, replacing any existing
// file there.
type Pull struct {
	Destination string
}

func (p Pull) Path() string { return p.Destination }
func (Pull) isRequest()     {}

// Pushes reports whether req sends data, which is the side that writes first
// on a fresh stream.
func Pushes(req Request) bool {
	_, ok := req.(Push)
	return ok
}
