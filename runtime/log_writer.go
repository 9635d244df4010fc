package runtime

import (
	"log/slog"
	"strings"
)

// playerLogWriter forwards the output of a player process to the launcher's
// logger, one record per line, tagged with the player id.
type playerLogWriter struct {
	logger  *slog.Logger
	player  string
	isError bool
}

func (w *playerLogWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	for _, line := range strings.Split(strings.TrimRight(string(p), "\r\n"), "\n") {
		if line == "" {
			continue
		}
		if w.isError {
			w.logger.Error(line, "child", w.player)
		} else {
			w.logger.Info(line, "child", w.player)
		}
	}
	return len(p), nil
}
