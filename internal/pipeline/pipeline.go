package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spurll/weather/internal/domain"
	"github.com/spurll/weather/internal/observability"
)

// Forecaster fetches and normalizes today's forecast for a city.
type Forecaster interface {
	Forecast(ctx context.Context, city string) (*domain.DailyForecast, error)
}

// DirectoryLister fetches the workspace directory of addressable recipients.
type DirectoryLister interface {
	Directory(ctx context.Context) ([]domain.Destination, error)
}

// Messenger posts message text and an icon to a destination id.
type Messenger interface {
	Post(ctx context.Context, destinationID, text, iconURL string) error
}

// Options are the per-run knobs from the command line.
type Options struct {
	City   string
	Notify bool
	Terse  bool
}

// Pipeline orchestrates one notifier run: fetch and compose the report
// once, then resolve and dispatch for each recipient token in order.
type Pipeline struct {
	forecaster Forecaster
	directory  DirectoryLister
	messenger  Messenger
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Pipeline with the given collaborators and observability.
func New(f Forecaster, d DirectoryLister, m Messenger, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		forecaster: f,
		directory:  d,
		messenger:  m,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes one notifier run. A forecast failure degrades the report
// instead of aborting; resolution and delivery failures are per-recipient
// and never stop the remaining tokens. Run always completes, so the
// process can exit 0 after reporting diagnostics.
func (p *Pipeline) Run(ctx context.Context, tokens []string, opts Options) {
	forecast, err := p.forecaster.Forecast(ctx, opts.City)
	if err != nil {
		p.logger.Warn("forecast fetch failed, sending degraded report",
			"city", opts.City, "error", err)
		forecast = nil
	}

	message := domain.Compose(forecast, opts.Terse)

	// The directory is fetched lazily and at most once: explicit "@"/"#"
	// tokens never need it, and one snapshot serves every bare token in
	// the run.
	var (
		dir       []domain.Destination
		dirErr    error
		dirLoaded bool
	)
	loadDirectory := func() ([]domain.Destination, error) {
		if !dirLoaded {
			dir, dirErr = p.directory.Directory(ctx)
			dirLoaded = true
		}
		return dir, dirErr
	}

	delivered := 0
	skipped := 0
	for _, token := range tokens {
		destID, ok := p.resolveToken(token, loadDirectory)
		if !ok {
			skipped++
			continue
		}

		if err := p.dispatch(ctx, destID, message, opts.Notify); err != nil {
			p.logger.Error("delivery failed", "recipient", destID, "error", err)
			skipped++
			continue
		}
		delivered++
	}

	p.logger.Info("run complete",
		"recipients", len(tokens), "delivered", delivered, "skipped", skipped)
}

// resolveToken maps one token to a destination id, reporting diagnostics
// and returning ok=false when the token must be skipped.
func (p *Pipeline) resolveToken(token string, loadDirectory func() ([]domain.Destination, error)) (string, bool) {
	// Explicit handles bypass the directory entirely, so they remain
	// dispatchable even when the directory listing fails.
	if strings.HasPrefix(token, "@") || strings.HasPrefix(token, "#") {
		p.metrics.Resolutions.WithLabelValues("resolved").Inc()
		return token, true
	}

	dir, err := loadDirectory()
	if err != nil {
		p.logger.Error("cannot resolve recipient without directory",
			"recipient", token, "error", err)
		p.metrics.Resolutions.WithLabelValues("error").Inc()
		return "", false
	}

	result, err := domain.Resolve(token, dir)
	if err != nil {
		p.logger.Error("recipient resolution failed", "recipient", token, "error", err)
		p.metrics.Resolutions.WithLabelValues("error").Inc()
		return "", false
	}

	switch result.Kind {
	case domain.Resolved:
		p.metrics.Resolutions.WithLabelValues("resolved").Inc()
		return result.DestinationID, true
	case domain.Ambiguous:
		p.logger.Warn("recipient is ambiguous, skipping",
			"recipient", token, "candidates", result.Candidates)
		p.metrics.Resolutions.WithLabelValues("ambiguous").Inc()
		return "", false
	default:
		p.logger.Warn("recipient not found, skipping", "recipient", token)
		p.metrics.Resolutions.WithLabelValues("not_found").Inc()
		return "", false
	}
}

// dispatch posts the message to one destination, appending an attention
// tag on a per-recipient copy when notify is set.
func (p *Pipeline) dispatch(ctx context.Context, destinationID string, message domain.ComposedMessage, notify bool) error {
	text := message.Text
	if notify {
		text = withAttentionTag(text, destinationID)
	}
	return p.messenger.Post(ctx, destinationID, text, message.IconURL)
}

// withAttentionTag appends the mention for a destination unless the text
// already contains it: the recipient's own handle for users, the broadcast
// mention for channels.
func withAttentionTag(text, destinationID string) string {
	mention := destinationID
	if strings.HasPrefix(destinationID, "#") {
		mention = "@channel"
	}
	if strings.Contains(text, mention) {
		return text
	}
	return text + " " + mention
}
