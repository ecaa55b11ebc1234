package player

import (
	"fmt"
	"os"
	"os/exec"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv and blocks until it exits.
func (m *MPV) Play(url, title, referer string) error {
	args := []string{
		url,
		"--force-media-title=" + title,
		"--really-quiet",
	}
	if referer != "" {
		args = append(args, "--referrer="+referer)
	}

	cmd := exec.Command("mpv", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		// mpv exits non-zero on user quit, which is normal.
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("running mpv: %w", err)
	}
	return nil
}
