package tpu

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"

	"github.com/podrun/podrun/errors"
)

// Status is the subset of `gcloud compute tpus describe` output podrun uses.
type Status struct {
	Name             string `json:"name"`
	State            string `json:"state"`
	AcceleratorType  string `json:"acceleratorType"`
	Network          string `json:"network"`
	APIVersion       string `json:"apiVersion"`
	NetworkEndpoints []struct {
		IPAddress string `json:"ipAddress"`
	} `json:"networkEndpoints"`
}

// Workers returns the slice's worker count. Single-host TPUs report no
// network endpoints; they still have one addressable worker.
func (s *Status) Workers() int {
	if len(s.NetworkEndpoints) == 0 {
		return 1
	}
	return len(s.NetworkEndpoints)
}

// Describe fetches the slice's current status from the TPU API
func (c *Client) Describe(ctx context.Context) (*Status, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "gcloud", c.describeArgs()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := errors.Wrapf(errors.ErrTransport, "failed to describe TPU %s: %s", c.name, stderr.String())
		return nil, errors.WithHint(wrapped, "check `gcloud auth list` and that the TPU name/zone are correct")
	}

	return ParseStatus(stdout.Bytes())
}

// ParseStatus decodes describe output. Split out for tests.
func ParseStatus(data []byte) (*Status, error) {
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, errors.Wrap(err, "failed to parse TPU describe output")
	}
	return &status, nil
}

// WorkerCount resolves the slice's current worker count at dispatch time.
// Implements engine.WorkerCounter.
func (c *Client) WorkerCount(ctx context.Context) (int, error) {
	status, err := c.Describe(ctx)
	if err != nil {
		return 0, err
	}
	return status.Workers(), nil
}
