package figure

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes an external renderer invocation. Backends take a Runner
// so tests can record commands instead of spawning processes.
type Runner func(ctx context.Context, argv []string) error

// runCommand is the default Runner. It executes argv with stderr captured
// and folds a non-zero exit into the returned error.
func runCommand(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(errBuf.String())
		if detail != "" {
			return fmt.Errorf("%s: %v: %s", filepath.Base(argv[0]), err, detail)
		}
		return fmt.Errorf("%s: %v", filepath.Base(argv[0]), err)
	}
	return nil
}

// toolMissing reports whether path does not resolve to an executable,
// neither as a file path nor through PATH.
func toolMissing(path string) bool {
	_, err := exec.LookPath(path)
	return err != nil
}
