package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/avatarctic/weather-api-wrapper/internal/core/domain/weather"
)

const (
	currentEndpoint = "/current.json"
	maxBodyBytes    = 1 << 20
	defaultTimeout  = 10 * time.Second
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// BreakerFailures consecutive upstream faults open the circuit; 0 uses 5.
	BreakerFailures    int
	BreakerOpenTimeout time.Duration
}

// Client implements ports.WeatherProvider for WeatherAPI.com.
// One attempt per call; the breaker only short-circuits while upstream is failing.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *logrus.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(timeout)
	}
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	openTimeout := cfg.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("weather provider circuit state changed")
			}
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    httpClient,
		circuit: cb,
		logger:  logger,
	}
}

// FetchCurrent requests current conditions for the trimmed, original-case city.
func (c *Client) FetchCurrent(ctx context.Context, cityRaw string) (weather.Record, error) {
	city := strings.TrimSpace(cityRaw)

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.fetch(ctx, city)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, weather.NewError(weather.KindUnreachable, weather.MsgUnreachable, err)
		}
		if weather.KindOf(err) == weather.KindUnknown && c.logger != nil {
			c.logger.WithError(errors.Unwrap(err)).WithField("city", city).Error("Unexpected error fetching weather data")
		}
		return nil, err
	}

	record, ok := result.(weather.Record)
	if !ok {
		return nil, weather.NewError(weather.KindUnknown, weather.MsgUnknown, fmt.Errorf("unexpected result type %T", result))
	}
	return record, nil
}

func (c *Client) fetch(ctx context.Context, city string) (weather.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("q", city)
	u := fmt.Sprintf("%s%s?%s", c.baseURL, currentEndpoint, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, weather.NewError(weather.KindUnknown, weather.MsgUnknown, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, weather.NewError(weather.KindUnknown, weather.MsgUnknown, errors.New("weatherapi returned a non-JSON body"))
	}
	return weather.Record(body), nil
}
