package dispatch

// Action is the global mode of a run. Exactly one action applies to every
// tool in the work list; it is chosen once from the CLI flags.
type Action int

const (
	Install Action = iota
	Update
	Remove
)

// String returns the lowercase verb used in log messages.
func (a Action) String() string {
	switch a {
	case Install:
		return "install"
	case Update:
		return "update"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}
