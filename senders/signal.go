package senders

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/mkarpus/feedsignal/lib/models"
)

// signalSender dispatches through the external signal-cli command,
// one synchronous invocation per destination. Arguments are passed as
// a vector, never through a shell, so titles and descriptions
// containing quotes or control characters cannot alter the command.
type signalSender struct {
	base
	command []string
}

func (s *signalSender) Send(ctx context.Context, dest models.Destination, n Notification) error {
	argv := s.argv(dest, n)

	if n.DryRun {
		s.log.Sugar().Infow("Would run", "argv", argv)
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("signal-cli: %w (output: %q)", err, out)
	}
	s.log.Sugar().Infow("Sent signal notification", "recipient", dest.Recipient(), "link", n.Entry.Link)
	return nil
}

func (s *signalSender) argv(dest models.Destination, n Notification) []string {
	argv := append([]string{}, s.command...)
	argv = append(argv,
		"send",
		"-m", n.Entry.Link,
		"--preview-url", n.Entry.Link,
		"--preview-title", n.Entry.Title,
		"--preview-description", n.Entry.Description,
	)
	if n.PreviewImage != "" {
		argv = append(argv, "--preview-image", n.PreviewImage)
	}
	return append(argv, dest.SignalArgs()...)
}
