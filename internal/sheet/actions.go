package sheet

import (
	"errors"
	"fmt"
)

// Action selects which member list a sheet mutation targets. The set is
// closed: dispatch matches exhaustively and anything else is rejected
// with ErrInvalidAction.
type Action string

const (
	// ActionSetPackedBy adds a member to the packed-by list.
	ActionSetPackedBy Action = "set-packed-by"
	// ActionSetPricedBy adds a member to the unpacked/priced-by list.
	ActionSetPricedBy Action = "set-priced-by"
	// ActionSetPotter adds a member as a contributing maker with an
	// empty piece list.
	ActionSetPotter Action = "set-potter"
	// ActionRemovePackedBy removes the most recently added packer.
	ActionRemovePackedBy Action = "remove-packed-by"
	// ActionRemovePricedBy removes the most recently added pricer.
	ActionRemovePricedBy Action = "remove-priced-by"
)

var (
	// ErrInvalidAction is returned when an unrecognized action tag
	// reaches the dispatcher. A correctly wired caller never triggers
	// it.
	ErrInvalidAction = errors.New("invalid action")

	// ErrUnknownMember is returned when an action references a member
	// id that is not in the roster. The action aborts without mutating
	// any list.
	ErrUnknownMember = errors.New("unknown member")

	// ErrValidation is returned for field values rejected at this
	// boundary: out-of-window dates, temperatures outside the firing
	// type's range, negative costs, bad piece indexes.
	ErrValidation = errors.New("invalid value")
)

// ParseAction validates a wire-format action tag.
func ParseAction(tag string) (Action, error) {
	switch a := Action(tag); a {
	case ActionSetPackedBy, ActionSetPricedBy, ActionSetPotter,
		ActionRemovePackedBy, ActionRemovePricedBy:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, tag)
	}
}
