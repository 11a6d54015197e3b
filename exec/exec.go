package exec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Output runs the named command and returns its raw standard
// output. Standard error is kept out of the result and only
// reported as part of the error when the command fails or
// cannot be started.
func Output(
	ctx context.Context,
	name string,
	arg ...string,
) ([]byte, error) {
	const errCtx = "executing command"

	slog.Info(
		"executing",
		"cmd", name,
		"args", strings.Join(arg, " "),
	)

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Stderr = &stderr

	by, err := cmd.Output()
	if err != nil {
		err = fmt.Errorf(
			"%s: %s %s: %w",
			errCtx, name, strings.Join(arg, " "), err,
		)

		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}

		return by, err
	}

	return by, nil
}
