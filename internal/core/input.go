package core

// Action represents a semantic UI action, abstracted from physical key presses.
// Pointer input (the actual catching) is delivered separately as coordinates.
type Action int

const (
	ActionNone        Action = iota
	ActionStart              // Space, Enter - start a round from idle
	ActionPause              // P, Escape - toggle pause
	ActionRestart            // R - new round after the previous one ended
	ActionLeaderboard        // L - open the leaderboard
	ActionRefresh            // F5, Ctrl+R - reload leaderboard data
	ActionBack               // B, Escape on secondary screens - go back
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionLeaderboard:
		return "Leaderboard"
	case ActionRefresh:
		return "Refresh"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
