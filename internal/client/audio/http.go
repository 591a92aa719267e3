package audio

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/client"
	"github.com/dmitrijs2005/fieldkeeper/internal/common"
)

const DefaultMaxAudioBytes = 8 << 20

// HTTPLoader fetches audio over HTTP and opens it on a Device. Anything but
// a 2xx audio/* response is a load failure.
type HTTPLoader struct {
	httpClient *http.Client
	device     Device
	maxBytes   int64
}

func NewHTTPLoader(device Device, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		httpClient: &http.Client{Timeout: timeout},
		device:     device,
		maxBytes:   DefaultMaxAudioBytes,
	}
}

func (l *HTTPLoader) Load(ctx context.Context, locator string) (Handle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "audio/*")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &client.StatusError{
			Method: http.MethodGet,
			URL:    locator,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}

	ct := resp.Header.Get("Content-Type")
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil || !strings.HasPrefix(mt, "audio/") {
		return nil, fmt.Errorf("%w: content type %q", common.ErrNotAudio, ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("audio larger than %d bytes", l.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", common.ErrNotAudio)
	}

	h, err := l.device.Open(data)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return h, nil
}
