package senders

import (
	"context"
	"testing"

	"github.com/mkarpus/feedsignal/config"
	"github.com/mkarpus/feedsignal/lib/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSignalSender(command ...string) *signalSender {
	return &signalSender{
		base:    base{log: zap.NewNop(), cfg: &config.Config{}},
		command: command,
	}
}

func testNotification(preview string) Notification {
	return Notification{
		FeedName: "blog",
		Entry: models.Entry{
			ID:          "post-1",
			Link:        "https://example.com/post-1",
			Title:       `Quotes " and $(stuff) stay inert`,
			Description: "A description; with 'quotes'",
		},
		PreviewImage: preview,
	}
}

func TestSignalSender_Argv(t *testing.T) {
	s := newSignalSender("signal-cli")

	argv := s.argv(models.Destination{Group: "G"}, testNotification(""))
	assert.Equal(t, []string{
		"signal-cli", "send",
		"-m", "https://example.com/post-1",
		"--preview-url", "https://example.com/post-1",
		"--preview-title", `Quotes " and $(stuff) stay inert`,
		"--preview-description", "A description; with 'quotes'",
		"-g", "G",
	}, argv)
}

func TestSignalSender_ArgvWithPreviewImage(t *testing.T) {
	s := newSignalSender("signal-cli")

	argv := s.argv(models.Destination{Phone: "+15550100"}, testNotification("/tmp/preview.png"))
	assert.Contains(t, argv, "--preview-image")
	assert.Contains(t, argv, "/tmp/preview.png")
	assert.Equal(t, "+15550100", argv[len(argv)-1])
}

func TestSignalSender_ArgvWithCommandPrefix(t *testing.T) {
	s := newSignalSender("ssh", "relay", "signal-cli")

	argv := s.argv(models.Destination{Username: "alice"}, testNotification(""))
	assert.Equal(t, []string{"ssh", "relay", "signal-cli"}, argv[:3])
	assert.Equal(t, []string{"-u", "alice"}, argv[len(argv)-2:])
}

func TestSignalSender_DryRunDoesNotExecute(t *testing.T) {
	// The command does not exist; only the dry-run short circuit can
	// make this succeed.
	s := newSignalSender("/nonexistent/signal-cli")

	n := testNotification("")
	n.DryRun = true
	assert.NoError(t, s.Send(context.Background(), models.Destination{Group: "G"}, n))
}

func TestSignalSender_LaunchFailureIsDispatchFailure(t *testing.T) {
	s := newSignalSender("/nonexistent/signal-cli")

	err := s.Send(context.Background(), models.Destination{Group: "G"}, testNotification(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signal-cli")
}
