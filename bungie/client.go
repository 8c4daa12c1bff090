package bungie

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"

	"github.com/rking788/warmind-advisors/monitoring"
)

// StatusResponse is used as the generic response parameter for the deserialized response
// from the Client execute calls. Every endpoint schema below implements it.
type StatusResponse interface {
	ErrCode() int
	ErrStatus() string
	// hasResult reports whether the top level Response field was present and non-null.
	hasResult() bool
}

// BaseResponse represents the data returned as part of all of the Bungie API
// requests.
type BaseResponse struct {
	ErrorCode       int         `json:"ErrorCode"`
	ThrottleSeconds int         `json:"ThrottleSeconds"`
	ErrorStatus     string      `json:"ErrorStatus"`
	Message         string      `json:"Message"`
	MessageData     interface{} `json:"MessageData"`
}

// ErrCode returns the err code field from a Bungie response
func (b *BaseResponse) ErrCode() int {
	if b == nil {
		return 0
	}
	return b.ErrorCode
}

// ErrStatus returns the status string provided in the Bungie response
func (b *BaseResponse) ErrStatus() string {
	if b == nil {
		return ""
	}
	return b.ErrorStatus
}

func (b *BaseResponse) String() string {
	if b != nil {
		return fmt.Sprintf("%+v", *b)
	}
	return "<nil>"
}

// IsValid is the response validator: a document is usable only when it carries the success
// error code and a non-null Response.
func IsValid(response StatusResponse) bool {
	return response != nil && response.ErrCode() == successErrorCode && response.hasResult()
}

// Logger is the logging port used by the Client. *glg.Glg satisfies it.
type Logger interface {
	Debugf(format string, val ...interface{}) error
	Warnf(format string, val ...interface{}) error
}

// Config holds everything needed to construct a Client.
type Config struct {
	APIKey  string
	BaseURL string

	Transport Transport
	Logger    Logger

	// MaxClanPages bounds the number of roster pages requested by GetClanRoster.
	MaxClanPages int
	// ClanPageAttempts is how many times an invalid roster page is requested before it is skipped.
	ClanPageAttempts int
}

// Client is a type that contains all information needed to make read requests to the
// Bungie API. A Client is immutable and safe for concurrent use.
type Client struct {
	apiKey    string
	baseURL   string
	transport Transport
	log       Logger

	maxClanPages     int
	clanPageAttempts int
}

// NewClient applies defaults to cfg and creates the Client.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:           cfg.APIKey,
		baseURL:          cfg.BaseURL,
		transport:        cfg.Transport,
		log:              cfg.Logger,
		maxClanPages:     cfg.MaxClanPages,
		clanPageAttempts: cfg.ClanPageAttempts,
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(nil)
	}
	if c.log == nil {
		c.log = glg.Get()
	}
	if c.maxClanPages <= 0 {
		c.maxClanPages = DefaultMaxClanPages
	}
	if c.clanPageAttempts <= 0 {
		c.clanPageAttempts = DefaultClanPageAttempts
	}

	return c
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"X-Api-Key": c.apiKey,
	}
}

// execute sends the request through the transport, decodes the body into response and runs
// the validator. Transport and decode failures are reported and logged; an invalid document
// is an expected outcome (unknown player, Xur absent) and is only counted.
func (c *Client) execute(ctx context.Context, request *APIRequest, response StatusResponse) bool {

	start := time.Now()
	body, err := c.transport.Fetch(ctx, request.URL(c.baseURL), c.headers())
	monitoring.BungieRequestDuration.WithLabelValues(request.Name).
		Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		raven.CaptureError(err, map[string]string{"endpoint": request.Name})
		c.log.Warnf("Error executing request %s: %s", request, err.Error())
		monitoring.BungieRequests.WithLabelValues(request.Name, monitoring.OutcomeTransport).Inc()
		return false
	}

	if err = json.Unmarshal(body, response); err != nil {
		raven.CaptureError(err, map[string]string{"endpoint": request.Name})
		c.log.Warnf("Error decoding response for %s: %s", request, err.Error())
		monitoring.BungieRequests.WithLabelValues(request.Name, monitoring.OutcomeDecode).Inc()
		return false
	}

	if !IsValid(response) {
		if status := response.ErrStatus(); status != "" {
			monitoring.BungieErrorCode.WithLabelValues(status).Inc()
		}
		monitoring.BungieRequests.WithLabelValues(request.Name, monitoring.OutcomeInvalid).Inc()
		return false
	}

	monitoring.BungieRequests.WithLabelValues(request.Name, monitoring.OutcomeOK).Inc()
	return true
}
