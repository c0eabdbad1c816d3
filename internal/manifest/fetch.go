package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imamik/k8seed/internal/util/retry"
)

const fetchTimeout = 30 * time.Second

// Fetcher downloads versioned manifest bundles from remote references.
// Transient HTTP failures are retried with backoff; a 404 is fatal because
// a pinned version that does not exist will never appear on retry.
type Fetcher struct {
	client    *http.Client
	log       logrus.FieldLogger
	retryOpts []retry.Option
}

// NewFetcher creates a Fetcher with a bounded per-request timeout.
func NewFetcher(log logrus.FieldLogger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
		retryOpts: []retry.Option{
			retry.WithMaxRetries(4),
			retry.WithInitialDelay(2 * time.Second),
		},
	}
}

// Fetch downloads the bundle at url and decodes it into Resources.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Resource, error) {
	var body []byte

	err := retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Fatal(fmt.Errorf("failed to build request for %s: %w", url, err))
		}

		resp, err := f.client.Do(req)
		if err != nil {
			f.log.WithField("url", url).WithError(err).Debug("bundle fetch attempt failed")
			return fmt.Errorf("failed to fetch %s: %w", url, err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusNotFound:
			return retry.Fatal(fmt.Errorf("bundle not found at %s: pinned version does not exist", url))
		default:
			return fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read bundle body from %s: %w", url, err)
		}
		return nil
	}, f.retryOpts...)
	if err != nil {
		return nil, err
	}

	resources, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bundle from %s: %w", url, err)
	}

	f.log.WithFields(logrus.Fields{
		"url":       url,
		"resources": len(resources),
	}).Debug("fetched manifest bundle")

	return resources, nil
}
