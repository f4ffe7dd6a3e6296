package bridge

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const openRetryAttempts = 3

// Open - POST "<remoteHost>:<remotePort>" to
// baseURL+"/"+id. 201 means the tunnel is live; any other status is a
// fatal, non-retryable failure whose status line and body are returned for
// the caller to print before exiting nonzero. A transient transport-level
// error (the bridge's keep-alive connection resetting under us, since this
// is the very first request on it) is retried a few times.
func Open(client *http.Client, baseURL, id, remoteHost string, remotePort int) error {
	url := baseURL + "/" + id
	body := fmt.Sprintf("%s:%d", remoteHost, remotePort)

	var lastErr error
	for attempt := 0; attempt < openRetryAttempts; attempt++ {
		resp, err := client.Post(url, "text/plain", strings.NewReader(body))
		if err != nil {
			lastErr = err
			time.Sleep(200 * time.Millisecond)
			continue
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusCreated {
			return nil
		}
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bridge open failed: %s: %s", resp.Status, string(respBody))
	}
	return fmt.Errorf("bridge unreachable: %w", lastErr)
}
