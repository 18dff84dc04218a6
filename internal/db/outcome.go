package db

// Outcome reports what a mutating call did.
type Outcome int

const (
	// NotFound means no record had the requested id. Nothing changed.
	NotFound Outcome = iota
	// Unchanged means the record exists but the call had nothing to change.
	Unchanged
	// Applied means the change was made and persisted.
	Applied
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not found"
	case Unchanged:
		return "unchanged"
	case Applied:
		return "applied"
	}
	return "unknown"
}
