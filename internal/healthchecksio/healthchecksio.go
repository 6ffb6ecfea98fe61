package healthchecksio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// New creates a healthchecks.io client to report the start and
// the exit code of each run of the program.
// If passed an empty uuid string, it acts as no-op implementation.
func New(httpClient *http.Client, baseURL, uuid string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		uuid:       uuid,
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	uuid       string
}

var ErrStatusCode = errors.New("bad status code")

type State string

const (
	Start State = "start"
	Exit0 State = "0"
	Exit1 State = "1"
)

// ExitState returns the state to ping for the run error given.
func ExitState(runErr error) State {
	if runErr != nil {
		return Exit1
	}
	return Exit0
}

func (c *Client) Ping(ctx context.Context, state State) (err error) {
	if c.uuid == "" {
		return nil
	}

	url := c.baseURL + "/" + c.uuid + "/" + string(state)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("doing http request: %w", err)
	}

	err = response.Body.Close()
	if err != nil {
		return fmt.Errorf("closing response body: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrStatusCode, response.Status)
	}

	return nil
}
