package playback

// State is where the controller sits in its play/pause lifecycle.
type State int

const (
	Stopped State = iota
	AttemptingResume
	Playing
	PlayRefused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case AttemptingResume:
		return "attempting-resume"
	case Playing:
		return "playing"
	case PlayRefused:
		return "play-refused"
	}
	return "unknown"
}
