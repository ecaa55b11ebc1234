// Package player provides a secure interface for launching media players.
// Players are invoked with exec.Command and explicit argument slices so
// stream URLs and titles are never shell-interpreted.
package player

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a stream URL and blocks until the player
	// exits. Several embed hosts gate their manifests behind a Referer
	// check; a non-empty referer is forwarded to the player.
	Play(url, title, referer string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{}
	}
}
