package media

import (
	"context"
	"time"

	"vidtube/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

// Limited bounds calls to another Uploader with a token bucket and a per-call
// timeout, and records metrics and spans for each call.
type Limited struct {
	next    Uploader
	limiter *rate.Limiter
	timeout time.Duration
}

// WithLimits wraps next. A non-positive perSecond disables the rate limit and
// a non-positive timeout disables the deadline.
func WithLimits(next Uploader, perSecond float64, timeout time.Duration) *Limited {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Limited{next: next, limiter: rate.NewLimiter(limit, 1), timeout: timeout}
}

func (l *Limited) Provider() string { return l.next.Provider() }

func (l *Limited) Upload(ctx context.Context, localPath string, kind Kind) (*Asset, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	ctx, finish := observability.StartSpan(ctx, "media.upload",
		attribute.String("media.provider", l.Provider()),
		attribute.String("media.kind", string(kind)),
	)
	start := time.Now()

	var (
		asset *Asset
		err   error
	)
	if err = l.limiter.Wait(ctx); err == nil {
		asset, err = l.next.Upload(ctx, localPath, kind)
	}

	observability.ObserveUpload(l.Provider(), string(kind), start, err)
	finish(err)
	return asset, err
}

func (l *Limited) Destroy(ctx context.Context, publicID string, kind Kind) error {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	ctx, finish := observability.StartSpan(ctx, "media.destroy",
		attribute.String("media.provider", l.Provider()),
		attribute.String("media.public_id", publicID),
	)
	err := l.limiter.Wait(ctx)
	if err == nil {
		err = l.next.Destroy(ctx, publicID, kind)
	}
	finish(err)
	return err
}

func (l *Limited) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}
