package player

import (
	"fmt"
	"os"
	"os/exec"
)

// Generic implements the Player interface for players like iina and
// celluloid that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

// Play launches the player with mpv-style flags.
func (g *Generic) Play(url, title, referer string) error {
	args := []string{
		url,
		"--force-media-title=" + title,
	}
	if referer != "" {
		args = append(args, "--referrer="+referer)
	}

	cmd := exec.Command(g.name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return fmt.Errorf("running %s: %w", g.name, err)
	}
	return nil
}
