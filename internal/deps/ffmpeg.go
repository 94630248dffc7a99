package deps

import (
	"os/exec"
	"strings"
)

// ResolveFFmpegPath returns the ffmpeg command voice transcription should
// run: the configured binary when set, otherwise "ffmpeg" resolved from
// PATH. An unresolvable binary is returned as-is so CheckBinaries reports
// it as missing instead of silently substituting a different one.
func ResolveFFmpegPath(configured string) string {
	configured = strings.TrimSpace(configured)
	if configured != "" {
		return configured
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path
	}
	return "ffmpeg"
}
