package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// PromoLink is the fixed promotional link appended to every share post
const PromoLink = "https://bunnyhit.app"

// ErrAllTargetsFailed indicates every share target in the chain failed.
// Callers only surface a share error to the player when they see this.
var ErrAllTargetsFailed = errors.New("all share targets failed")

// Target is one way of publishing a share post
type Target interface {
	// Name identifies the target in logs
	Name() string

	// Share publishes the text, or returns an error to fall through
	Share(ctx context.Context, text string) error
}

// ComposeText builds the share post for a final score
func ComposeText(score int) string {
	return fmt.Sprintf("I just scored %d points in Bunny Hit! 🐰 Play now: %s", score, PromoLink)
}

// Service publishes a round's result through an ordered fallback chain of
// targets. The first target to succeed wins; failures are logged and the
// next target is tried.
type Service struct {
	targets []Target
	logger  *slog.Logger
}

// New creates a share service with the given target chain
func New(logger *slog.Logger, targets ...Target) *Service {
	return &Service{
		targets: targets,
		logger:  logger,
	}
}

// Share composes the post for score and walks the target chain.
// It returns the name of the target that accepted the post.
func (s *Service) Share(ctx context.Context, score int) (string, error) {
	text := ComposeText(score)

	for _, target := range s.targets {
		if err := target.Share(ctx, text); err != nil {
			s.logger.Warn("share target failed, falling through",
				slog.String("target", target.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}

		s.logger.Info("share posted", slog.String("target", target.Name()))
		return target.Name(), nil
	}

	return "", ErrAllTargetsFailed
}

// WriterTarget writes the share text to an io.Writer. It is the last-resort
// fallback: the text ends up somewhere the player can copy it from.
type WriterTarget struct {
	writer io.Writer
}

// Ensure WriterTarget implements Target
var _ Target = (*WriterTarget)(nil)

// NewWriterTarget creates a writer-backed share target
func NewWriterTarget(w io.Writer) *WriterTarget {
	return &WriterTarget{writer: w}
}

// Name identifies the target in logs
func (t *WriterTarget) Name() string {
	return "writer"
}

// Share writes the text followed by a newline
func (t *WriterTarget) Share(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(t.writer, text)
	return err
}
