// Package tpu talks to a Google Cloud TPU VM slice through the gcloud CLI.
// It supplies the engine's remote-execution primitive and worker-count
// provider; gcloud owns authentication and SSH tunnelling.
package tpu

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/engine"
	"github.com/podrun/podrun/errors"
)

// Client runs commands on a TPU slice. Implements engine.Runner and
// engine.WorkerCounter.
type Client struct {
	project string
	zone    string
	name    string
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// NewClient builds a client from saved TPU configuration
func NewClient(cfg config.TPUConfig, logger *zap.SugaredLogger) (*Client, error) {
	if !cfg.Configured() {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrNotConfigured, "missing TPU project, zone, or name"),
			"run `podrun configure` first",
		)
	}
	return &Client{
		project: cfg.Project,
		zone:    cfg.Zone,
		name:    cfg.Name,
		// gcloud API quota guard: burst of a pod-wide fanout, then steady
		limiter: rate.NewLimiter(rate.Every(defaultRequestInterval), defaultRequestBurst),
		logger:  logger.Named("tpu"),
	}, nil
}

// Run executes the shell command on one worker and blocks until it exits or
// ctx is cancelled. Cancellation kills the local gcloud process; tearing
// down the SSH session hangs up the remote shell, best effort.
func (c *Client) Run(ctx context.Context, worker int, command string) (engine.RunResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return engine.RunResult{}, err
	}

	args := c.sshArgs(strconv.Itoa(worker), command)
	c.logger.Debugw("Invoking gcloud ssh", "worker", worker, "command", command)

	cmd := exec.CommandContext(ctx, "gcloud", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return engine.RunResult{}, ctx.Err()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
			return engine.RunResult{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		// gcloud itself could not run (not installed, killed by signal)
		return engine.RunResult{}, errors.Wrap(errors.ErrTransport, err.Error())
	}

	return engine.RunResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

const (
	defaultRequestInterval = 100 * time.Millisecond
	defaultRequestBurst    = 8
)

// sshArgs builds the gcloud argv for a remote command. workerScope is a
// worker index or "all" (stream/nohup modes hand the fanout to gcloud).
func (c *Client) sshArgs(workerScope, command string) []string {
	args := []string{
		"compute", "tpus", "tpu-vm", "ssh", c.name,
		fmt.Sprintf("--zone=%s", c.zone),
		fmt.Sprintf("--worker=%s", workerScope),
		fmt.Sprintf("--project=%s", c.project),
	}
	if command != "" {
		args = append(args, fmt.Sprintf("--command=%s", command))
	}
	return args
}

func (c *Client) describeArgs() []string {
	return []string{
		"compute", "tpus", "describe", c.name,
		fmt.Sprintf("--zone=%s", c.zone),
		fmt.Sprintf("--project=%s", c.project),
		"--format=json",
	}
}
