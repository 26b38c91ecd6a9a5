package tpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/podrun/podrun/config"
	"github.com/podrun/podrun/errors"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(config.TPUConfig{
		Project: "ml-research",
		Zone:    "us-central2-b",
		Name:    "pod-v4-32",
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresConfiguration(t *testing.T) {
	_, err := NewClient(config.TPUConfig{Project: "p"}, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.True(t, errors.IsNotConfiguredError(err))
}

func TestSSHArgs(t *testing.T) {
	c := testClient(t)

	args := c.sshArgs("2", "python train.py --steps 100")
	assert.Equal(t, []string{
		"compute", "tpus", "tpu-vm", "ssh", "pod-v4-32",
		"--zone=us-central2-b",
		"--worker=2",
		"--project=ml-research",
		"--command=python train.py --steps 100",
	}, args)
}

func TestSSHArgsNoCommandForInteractive(t *testing.T) {
	c := testClient(t)

	args := c.sshArgs("0", "")
	assert.NotContains(t, args, "--command=")
	assert.Contains(t, args, "--worker=0")
}

func TestDescribeArgs(t *testing.T) {
	c := testClient(t)

	assert.Equal(t, []string{
		"compute", "tpus", "describe", "pod-v4-32",
		"--zone=us-central2-b",
		"--project=ml-research",
		"--format=json",
	}, c.describeArgs())
}

func TestParseStatus(t *testing.T) {
	payload := []byte(`{
		"name": "projects/ml-research/locations/us-central2-b/nodes/pod-v4-32",
		"state": "READY",
		"acceleratorType": "v4-32",
		"network": "default",
		"apiVersion": "V2",
		"networkEndpoints": [
			{"ipAddress": "10.0.0.2"},
			{"ipAddress": "10.0.0.3"},
			{"ipAddress": "10.0.0.4"},
			{"ipAddress": "10.0.0.5"}
		]
	}`)

	status, err := ParseStatus(payload)
	require.NoError(t, err)
	assert.Equal(t, "READY", status.State)
	assert.Equal(t, "v4-32", status.AcceleratorType)
	assert.Equal(t, 4, status.Workers())
}

func TestWorkersDefaultsToOne(t *testing.T) {
	status, err := ParseStatus([]byte(`{"name": "n", "state": "READY"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, status.Workers())
}

func TestParseStatusRejectsGarbage(t *testing.T) {
	_, err := ParseStatus([]byte("ERROR: not json"))
	assert.Error(t, err)
}

func TestNohupCommand(t *testing.T) {
	c := testClient(t)

	wrapped := c.NohupCommand("python train.py", "all")
	assert.Equal(t,
		"nohup python train.py > pod-v4-32_all_output.log 2> pod-v4-32_all_error.log &",
		wrapped)
}
