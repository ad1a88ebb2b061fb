package payment

import (
	"bytes"
	"context"
	c "elverra-club-backend/context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
)

func decodeJSON(r io.Reader, out interface{}) error {
	return json.NewDecoder(r).Decode(out)
}

// do sends a JSON request to a provider endpoint and decodes the JSON
// response into out. Non-2xx statuses are returned as errors with the
// response body attached.
func do(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("do: unable to marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	ctx, cancel := c.NewContextWithTimeOut(ctx, c.DefaultHttpTimeout)
	defer cancel()

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("do: unable to create request: %w", err)
	}
	req = req.WithContext(ctx)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do: request to %s failed: %w", url, err)
	}
	defer res.Body.Close()

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("do: error reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("do: %s returned %d: %s", url, res.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("do: error unmarshalling response body: %w", err)
		}
	}

	return nil
}
