package lifecycle

// GuardState is an explicit one-shot state machine for per-session actions.
// Guards reset only when the process restarts.
type GuardState int

const (
	NotStarted GuardState = iota
	Completed
)

// session holds the one-shot guards for a single process lifetime.
type session struct {
	snapshotRecorded GuardState
	dailyPLRecorded  GuardState
	athChecked       GuardState
}
