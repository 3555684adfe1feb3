package model

// Preferences is the record persisted between runs.
type Preferences struct {
	LastPlatform    Platform `json:"last_platform"`
	InputDirectory  string   `json:"input_folder"`
	OutputDirectory string   `json:"output_folder"`
}

// DefaultPreferences returns the values used when nothing has been saved yet.
func DefaultPreferences() Preferences {
	return Preferences{LastPlatform: PlatformUnselected}
}
