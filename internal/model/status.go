package model

// ItemStatus represents the state of a single file in a batch conversion
type ItemStatus string

const (
	// ItemStatusPending means the file was found but not processed yet
	ItemStatusPending ItemStatus = "Pending"

	// ItemStatusConverting means the transcoder is running
	ItemStatusConverting ItemStatus = "Converting"

	// ItemStatusAwaitingName means the output exists and the user is asked for a new name
	ItemStatusAwaitingName ItemStatus = "AwaitingName"

	// ItemStatusCompleted means the output is final and the source was deleted
	ItemStatusCompleted ItemStatus = "Completed"

	// ItemStatusError means one of the steps failed; the source is kept
	ItemStatusError ItemStatus = "Error"
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsActive returns true while the item is being worked on
func (s ItemStatus) IsActive() bool {
	return s == ItemStatusConverting || s == ItemStatusAwaitingName
}

// IsFinished returns true if the item completed or failed
func (s ItemStatus) IsFinished() bool {
	return s == ItemStatusCompleted || s == ItemStatusError
}
