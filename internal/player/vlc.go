package player

import (
	"fmt"
	"os"
	"os/exec"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC and blocks until it exits.
func (v *VLC) Play(url, title, referer string) error {
	args := []string{
		url,
		"--meta-title", title,
		"--play-and-exit",
	}
	if referer != "" {
		args = append(args, "--http-referrer="+referer)
	}

	cmd := exec.Command("vlc", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		// VLC exits non-zero on user close.
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("running vlc: %w", err)
	}
	return nil
}
