package bridge

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/rectcircle/bridge/internal/variable"
)

// UplinkPump - local→remote. Reads up to MaxChunk bytes from
// the Local Endpoint, PUTs them, and repeats. A PUT that fails with a
// retryable transport error is retried with the same buffer, so long as
// the local side is still open and the tunnel is still connected: bytes
// already accepted from the local side are never dropped. Only a
// successful PUT clears the buffer and advances to the next local read.
func UplinkPump(client *http.Client, baseURL, id string, local *Local, connected *Connected) error {
	url := baseURL + "/" + id
	buf := make([]byte, variable.MaxChunk)

	for {
		n, readErr := local.Read(buf)
		if n == 0 && readErr != nil {
			// Local EOF (or any local read failure, treated the same way):
			// notify the bridge and stop sending.
			deleteTunnel(client, url)
			connected.Store(false)
			return nil
		}
		pending := append([]byte(nil), buf[:n]...)

		for {
			resp, err := putChunk(client, url, pending)
			if err != nil {
				if local.IsClosed() || !connected.Load() {
					return nil
				}
				time.Sleep(100 * time.Millisecond)
				continue // retry PUT with the same pending buffer
			}

			status := resp.StatusCode
			resp.Body.Close()

			switch {
			case status == http.StatusOK:
				// Buffer delivered; fall through to read the next local chunk.
			case status == http.StatusGone:
				connected.Store(false)
				local.CloseIn()
				return nil
			case status == http.StatusNotFound:
				connected.Store(false)
				return fmt.Errorf("uplink: bridge does not recognize connection %s", id)
			case status >= 500:
				return fmt.Errorf("uplink: bridge error: %s", resp.Status)
			default:
				return fmt.Errorf("uplink: unexpected bridge status: %s", resp.Status)
			}
			break
		}
		if !connected.Load() {
			return nil
		}
	}
}

func putChunk(client *http.Client, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	return client.Do(req)
}

func deleteTunnel(client *http.Client, url string) {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return
	}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
