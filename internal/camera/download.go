package camera

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"camctl/internal/services"
)

// Download opens a byte stream for one recording identified by its source
// locator. The returned size is -1 when the device does not announce one.
// The caller owns closing the stream.
func (c *Client) Download(ctx context.Context, source string) (io.ReadCloser, int64, error) {
	endpoint := c.commandURL("Download", url.Values{
		"source": []string{source},
		"output": []string{path.Base(source)},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, services.Wrap(services.ErrExternalTool, "camera", "download", "transfer failed", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, services.Wrap(services.ErrExternalTool, "camera", "download",
			fmt.Sprintf("unexpected status %s for %s", resp.Status, source), nil)
	}
	return resp.Body, resp.ContentLength, nil
}

// Snapshot captures a still frame from the given channel as JPEG bytes.
func (c *Client) Snapshot(ctx context.Context, channel int) ([]byte, error) {
	endpoint := c.commandURL("Snap", url.Values{
		"channel": []string{strconv.Itoa(channel)},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "camera", "snapshot", "capture failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrExternalTool, "camera", "snapshot",
			fmt.Sprintf("unexpected status %s", resp.Status), nil)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return data, nil
}
