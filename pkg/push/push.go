package push

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/vuhamthieu/posture-dashboard/pkg/common"
)

// Result is the per-token outcome of one multicast send.
type Result struct {
	Token   string
	Success bool
	Error   string
}

type Gateway interface {
	SendMulticast(ctx context.Context, tokens []string, title string, body string) ([]Result, error)
}

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

const DefaultTimeout = 5 * time.Second

// Client talks to the push gateway over HTTP. The gateway exposes one
// multicast endpoint taking a token list and a notification payload and
// answering with a per-token response list.
type Client struct {
	httpClient *resty.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	return &Client{httpClient: httpClient, cfg: cfg}
}

type multicastRequest struct {
	Tokens       []string            `json:"tokens"`
	Notification multicastNotifyBody `json:"notification"`
}

type multicastNotifyBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type multicastResponse struct {
	Responses []struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	} `json:"responses"`
}

func (c *Client) SendMulticast(ctx context.Context, tokens []string, title string, body string) ([]Result, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	logger := common.GetLoggerWith(common.LoggerNamePushGateway)

	var response multicastResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(multicastRequest{
			Tokens:       tokens,
			Notification: multicastNotifyBody{Title: title, Body: body},
		}).
		SetResult(&response).
		Post("/v1/messages:multicast")

	if err != nil {
		return nil, fmt.Errorf("push gateway unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("push gateway returned status %v", resp.StatusCode())
	}

	results := make([]Result, len(tokens))
	for i, token := range tokens {
		result := Result{Token: token, Success: true}
		if i < len(response.Responses) {
			result.Success = response.Responses[i].Success
			result.Error = response.Responses[i].Error
		}
		if !result.Success {
			logger.Warn("Push failed for token",
				zap.String("token", token),
				zap.String("error", result.Error))
		}
		results[i] = result
	}
	return results, nil
}

var (
	defaultClient *Client
	once          sync.Once
)

// Init sets up the process-wide client on first call; later calls return the
// existing client and ignore their argument. Survives being called from
// concurrent cold-start paths.
func Init(cfg Config) *Client {
	once.Do(func() {
		defaultClient = NewClient(cfg)
	})
	return defaultClient
}

func Default() Gateway {
	if defaultClient == nil {
		panic("push: Default called before Init")
	}
	return defaultClient
}

// Reset tears the singleton down so tests can re-Init with their own config.
func Reset() {
	defaultClient = nil
	once = sync.Once{}
}
