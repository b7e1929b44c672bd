// CLAUDE:SUMMARY Remote YAML catalogs over HTTP(S): GET with retries for reads, HEAD validators for change detection.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hazyhaar/autolex/pkg/lexicon"
)

// maxRemoteCatalog bounds the size of a downloaded catalog.
const maxRemoteCatalog = 64 << 20

func init() {
	Register(&remoteSource{scheme: "http", client: &http.Client{Timeout: time.Minute}})
	Register(&remoteSource{scheme: "https", client: &http.Client{Timeout: time.Minute}})
}

// remoteSource reads a YAML catalog published at a URL. The location is
// the URI with its scheme stripped ("//host/path").
type remoteSource struct {
	scheme  string
	client  *http.Client
	backoff time.Duration
}

func (s *remoteSource) Scheme() string { return s.scheme }

func (s *remoteSource) url(location string) string {
	return s.scheme + ":" + location
}

func (s *remoteSource) Read(ctx context.Context, location string) (*lexicon.Definitions, error) {
	url := s.url(location)
	data, err := s.download(ctx, url)
	if err != nil {
		return nil, err
	}
	return decodeYAML(data, url)
}

// Fingerprint prefers the ETag, then Last-Modified, then Content-Length.
func (s *remoteSource) Fingerprint(ctx context.Context, location string) (string, error) {
	url := s.url(location)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HEAD %s: HTTP %d", url, resp.StatusCode)
	}
	for _, h := range []string{"ETag", "Last-Modified", "Content-Length"} {
		if v := resp.Header.Get(h); v != "" {
			return h + ":" + v, nil
		}
	}
	return "", fmt.Errorf("HEAD %s: no validator header", url)
}

// download fetches url with up to three attempts and exponential backoff.
func (s *remoteSource) download(ctx context.Context, url string) ([]byte, error) {
	backoff := s.backoff
	if backoff == 0 {
		backoff = time.Second
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff << uint(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteCatalog))
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return data, nil
	}
	return nil, fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}
