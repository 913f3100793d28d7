package domain

// PlayerStatus is the playback status of a player.
type PlayerStatus string

const (
	StatusPending   PlayerStatus = "pending"
	StatusRunning   PlayerStatus = "running"
	StatusPaused    PlayerStatus = "paused"
	StatusFinished  PlayerStatus = "finished"
	StatusDestroyed PlayerStatus = "destroyed"
)

// Terminal reports whether no further playback can happen.
func (s PlayerStatus) Terminal() bool {
	return s == StatusDestroyed
}
