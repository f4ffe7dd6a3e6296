package bridge

import (
	"fmt"
	"io"
	"net/http"
)

// DownlinkPump - remote→local. Repeatedly GETs the bridge and
// writes whatever bytes come back to the Local Endpoint. Uses a dedicated
// http.Client with ClientReadTimeout (IdleTimeoutSeconds+3s), slightly
// longer than the server's own ServerIdleWait so the server always answers
// first.
func DownlinkPump(client *http.Client, baseURL, id string, local *Local, connected *Connected) error {
	url := baseURL + "/" + id

	for {
		resp, err := client.Get(url)
		if err != nil {
			if isTimeoutErr(err) {
				if local.IsClosed() {
					return nil
				}
				continue // retry GET
			}
			// Bridge unreachable / connection refused.
			local.CloseIn()
			return nil
		}

		switch resp.StatusCode {
		case http.StatusOK:
			_, copyErr := io.Copy(local, resp.Body)
			resp.Body.Close()
			if copyErr != nil {
				if local.IsClosed() {
					return nil
				}
				continue
			}
		case http.StatusNoContent:
			resp.Body.Close()
			// Idle; immediately re-issue GET.
		case http.StatusGone:
			resp.Body.Close()
			connected.Store(false)
			local.CloseIn()
			return nil
		case http.StatusNotFound:
			resp.Body.Close()
			connected.Store(false)
			return fmt.Errorf("downlink: bridge does not recognize connection %s", id)
		default:
			resp.Body.Close()
			return fmt.Errorf("downlink: unexpected bridge status: %s", resp.Status)
		}

		if local.IsClosed() {
			return nil
		}
	}
}
