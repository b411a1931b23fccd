// Package exectool provides a shell-command tool. Commands run through
// "sh -c" with a generous per-tool timeout; output framing mirrors the
// observation text the model is prompted to expect.
package exectool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/skosovsky/reagent"
)

// New builds the run_shell_command tool.
func New() (*reagent.Tool, error) {
	return reagent.NewDocTool("run_shell_command", `
Executes a shell command.

Args:
    command: The command to execute.

Returns:
    The output of the command.
`, run, reagent.WithTimeout(30*time.Second))
}

func run(ctx context.Context, command string) string {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Sprintf("Error executing command:\n%s", stderr.String())
		}
		return fmt.Sprintf("Error executing command: %v", err)
	}
	return fmt.Sprintf("Command executed successfully:\n%s", stdout.String())
}
