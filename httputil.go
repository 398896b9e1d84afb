package networth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// contains http utils to deal with remote price services

// requestTimeout bounds a single provider request so one unreachable
// service cannot stall the whole run.
const requestTimeout = 10 * time.Second

// httpClient is the client used by all providers. Overridable in tests.
var httpClient = &http.Client{Timeout: requestTimeout}

// jwget fetches a URL and decodes the JSON response body into v.
// A transport error or a non-2xx status is returned as is; a body that
// does not decode is reported as garbled so providers can distinguish
// a dead service from a changed one.
func jwget(ctx context.Context, addr string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errGarbled
	}
	return nil
}

// errGarbled marks a response body that could not be parsed.
var errGarbled = fmt.Errorf("garbled response")
