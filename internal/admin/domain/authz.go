package domain

import "fmt"

// Resource enumerates the two permission-matrix categories. Keeping these
// typed means a permission check can never miss a key at runtime; unknown
// strings are rejected at the parse boundary.
type Resource string

const (
	ResourceUser       Resource = "user"
	ResourceMasterData Resource = "masterData"
)

// Action enumerates the per-category permission flags.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ParseResource maps wire input onto a Resource.
func ParseResource(s string) (Resource, error) {
	switch Resource(s) {
	case ResourceUser, ResourceMasterData:
		return Resource(s), nil
	}
	return "", fmt.Errorf("unknown resource category %q", s)
}

// ParseAction maps wire input onto an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionView, ActionCreate, ActionUpdate, ActionDelete:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Allows reports the flag stored for action in this set.
func (p PermissionSet) Allows(action Action) bool {
	switch action {
	case ActionView:
		return p.View
	case ActionCreate:
		return p.Create
	case ActionUpdate:
		return p.Update
	case ActionDelete:
		return p.Delete
	}
	return false
}
