package tpu

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// Interactive opens a pass-through SSH session on one worker, handing the
// terminal to gcloud. No retry or timeout logic applies.
func (c *Client) Interactive(workerScope string) error {
	cmd := exec.Command("gcloud", c.sshArgs(workerScope, "")...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Stream runs the command with output wired straight to the terminal
// instead of being captured. workerScope may be "all"; gcloud interleaves
// per-worker output itself.
func (c *Client) Stream(ctx context.Context, workerScope, command string) error {
	cmd := exec.CommandContext(ctx, "gcloud", c.sshArgs(workerScope, command)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// NohupCommand wraps a command so it survives the SSH session, redirecting
// output to per-worker log files on the remote host.
func (c *Client) NohupCommand(command, workerScope string) string {
	outLog := shellquote.Join(fmt.Sprintf("%s_%s_output.log", c.name, workerScope))
	errLog := shellquote.Join(fmt.Sprintf("%s_%s_error.log", c.name, workerScope))
	return fmt.Sprintf("nohup %s > %s 2> %s &", command, outLog, errLog)
}
