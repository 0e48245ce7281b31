package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"codeberg.org/mutker/covidwatch/internal/errors"
)

const defaultTimeout = 30 * time.Second

// HTTPSource downloads datasets over HTTP.
type HTTPSource struct {
	client *http.Client
}

func NewHTTPSource() *HTTPSource {
	return &HTTPSource{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	errFactory := errors.New()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrFetchFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errFactory.WithData(errors.ErrHTTPStatus, struct {
			URL    string
			Status int
		}{
			URL:    url,
			Status: resp.StatusCode,
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrFetchFailed, err)
	}

	return body, nil
}

// FileSource reads datasets from local files. Used by test mode, where
// the configured "URLs" are plain file paths.
type FileSource struct{}

func NewFileSource() *FileSource {
	return &FileSource{}
}

func (*FileSource) Fetch(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrFetchFailed, err)
	}

	return data, nil
}
