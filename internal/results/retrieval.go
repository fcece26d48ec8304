package results

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// Load reads a report document from a local path or an http(s) URL.
// Remote reads use a retrying HTTP client since CI artifact stores can be
// briefly unavailable right after a build finishes.
func Load(pathOrURL string) ([]byte, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return loadURL(pathOrURL)
	}

	data, err := os.ReadFile(pathOrURL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read report %s", pathOrURL)
	}
	return data, nil
}

func loadURL(url string) ([]byte, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	resp, err := client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to retrieve report %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to retrieve report %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read report body from %s", url)
	}
	return data, nil
}

// WaitForFile polls for an externally produced report file using exponential
// backoff, returning an error when the file has not appeared within timeout.
func WaitForFile(path string, timeout time.Duration) error {
	exponentialBackOff := backoff.NewExponentialBackOff()
	exponentialBackOff.MaxElapsedTime = timeout
	exponentialBackOff.Reset()

	return backoff.Retry(func() error {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrapf(err, "report %s not present yet", path)
		}
		return nil
	}, exponentialBackOff)
}
