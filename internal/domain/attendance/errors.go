package attendance

import "errors"

// Business-rule rejections. These are expected outcomes of illegal
// transitions and map to 4xx responses; they never indicate storage trouble.
var (
	ErrAlreadyClockedIn  = errors.New("you are already clocked in")
	ErrNotClockedIn      = errors.New("you must be clocked in first")
	ErrAlreadyOnBreak    = errors.New("you are already on break")
	ErrNotOnBreak        = errors.New("you are not on break")
	ErrAlreadyClockedOut = errors.New("you have already clocked out")

	ErrUnknownAction = errors.New("unknown attendance action")

	ErrEntryNotFound = errors.New("time entry not found")
)

// ErrDuplicateActive is returned by CreateActive when another transaction
// won the race to create the active entry for the same (user, work date).
// The engine converges on the winning row instead of surfacing this.
var ErrDuplicateActive = errors.New("an active time entry already exists for this user and date")
