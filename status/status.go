// Package status models the entity lifecycle flag moved between states by
// handler-level convention: new entities start Unverified, updated entities
// advance to Verified, soft deletion marks rows Deleted without erasing them.
package status

// Status is the lifecycle state of an entity.
type Status int

const (
	Unverified Status = iota
	Verified
	Active
	Inactive
	Deleted
)

var names = map[Status]string{ //nolint:gochecknoglobals // static lookup table
	Unverified: "unverified",
	Verified:   "verified",
	Active:     "active",
	Inactive:   "inactive",
	Deleted:    "deleted",
}

func (s Status) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return "unknown"
}

// Valid reports whether s is one of the defined lifecycle states.
func (s Status) Valid() bool {
	_, ok := names[s]
	return ok
}

// Entity is the opt-in capability for entities that carry a lifecycle status.
// Handlers probe for it with a type assertion and skip the status mutation
// when the entity does not implement it.
type Entity interface {
	Status() Status
	SetStatus(Status)
}

// Apply sets st on e when e opts into the status capability.
// It reports whether the status was applied.
func Apply(e any, st Status) bool {
	se, ok := e.(Entity)
	if !ok {
		return false
	}
	se.SetStatus(st)
	return true
}
