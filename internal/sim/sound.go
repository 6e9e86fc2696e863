package sim

// Cue is a sound the world asks for. The platform decides what it sounds like.
type Cue int

const (
	CueNone Cue = iota
	CueThrow
	CueFed
	CueSated
	CueKilled
	CueBreach
	CueBuild
	CueTowerLost
	CueReject
	CueCooked
	CueWave
	CueWon
	CueLost
)

// SoundSink plays cues. Play must not block the tick.
type SoundSink interface {
	Play(Cue)
}

// NopSink discards every cue.
type NopSink struct{}

// Play does nothing.
func (NopSink) Play(Cue) {}

// CueFor maps an event to its sound, or CueNone.
func CueFor(k EventKind) Cue {
	switch k {
	case EventThrown:
		return CueThrow
	case EventFed:
		return CueFed
	case EventSated:
		return CueSated
	case EventKilled:
		return CueKilled
	case EventBreached:
		return CueBreach
	case EventTowerPlaced:
		return CueBuild
	case EventTowerDestroyed:
		return CueTowerLost
	case EventCraftRejected:
		return CueReject
	case EventCookingDone:
		return CueCooked
	case EventWaveStarted:
		return CueWave
	case EventWon:
		return CueWon
	case EventLost:
		return CueLost
	}
	return CueNone
}
