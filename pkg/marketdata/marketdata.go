// Package marketdata fetches historical price series and computes annualized
// growth. Lookups are best-effort advisory inputs: thin or missing history
// degrades to a conservative suggestion, never a hard failure for the
// request that asked.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// ErrInsufficientData indicates the series was empty or covered less than
// six months, too little to annualize meaningfully.
var ErrInsufficientData = errors.New("insufficient historical data")

// ConservativeSuggestion is the advisory fallback reported when history
// cannot be fetched or annualized.
const ConservativeSuggestion = "Use a conservative estimate (5-7% for diversified stock funds, 2-3% for bonds)"

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	defaultTimeout = 10 * time.Second
	minSpanYears   = 0.5
	daysPerYear    = 365.25
)

// Growth holds an annualized growth computation over a realized span.
type Growth struct {
	Ticker        string  `json:"ticker"`
	Annualized    float64 `json:"annualized_growth"`
	YearsAnalyzed float64 `json:"years_analyzed"`
	StartPrice    float64 `json:"start_price"`
	EndPrice      float64 `json:"end_price"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
}

// Client fetches daily close series from a chart-style quote endpoint.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a market data client.
func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  defaultTimeout,
			WriteTimeout: defaultTimeout,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// NewClientWithBaseURL creates a client against an explicit endpoint, used in
// tests.
func NewClientWithBaseURL(logger *zap.Logger, baseURL string) *Client {
	c := NewClient(logger)
	c.baseURL = baseURL
	return c
}

// chartResponse mirrors the subset of the chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamps []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// AnnualizedGrowth computes the compound annual growth rate for a ticker
// over the requested lookback, using the realized span of the returned
// series: (end/start)^(1/actualYears) - 1.
func (c *Client) AnnualizedGrowth(ctx context.Context, ticker string, years int) (Growth, error) {
	if years <= 0 {
		years = 5
	}

	body, err := c.fetchChart(ctx, ticker, years)
	if err != nil {
		return Growth{Ticker: ticker}, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Growth{Ticker: ticker}, fmt.Errorf("decoding chart response for %s: %w", ticker, err)
	}
	if parsed.Chart.Error != nil {
		return Growth{Ticker: ticker}, fmt.Errorf("chart error for %s: %s", ticker, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return Growth{Ticker: ticker}, ErrInsufficientData
	}

	result := parsed.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	return annualize(ticker, result.Timestamps, closes)
}

func (c *Client) fetchChart(ctx context.Context, ticker string, years int) ([]byte, error) {
	end := time.Now()
	start := end.AddDate(-years, 0, 0)
	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, ticker, start.Unix(), end.Unix())

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	timeout := defaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		c.logger.Warn("market data fetch failed",
			zap.String("op", "marketdata.fetchChart"),
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetching history for %s: %w", ticker, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("fetching history for %s: status %d", ticker, resp.StatusCode())
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

// annualize computes CAGR over the first and last valid close in the series.
func annualize(ticker string, timestamps []int64, closes []*float64) (Growth, error) {
	firstIdx, lastIdx := -1, -1
	for i, c := range closes {
		if c == nil || *c <= 0 || i >= len(timestamps) {
			continue
		}
		if firstIdx == -1 {
			firstIdx = i
		}
		lastIdx = i
	}
	if firstIdx == -1 || firstIdx == lastIdx {
		return Growth{Ticker: ticker}, ErrInsufficientData
	}

	startTime := time.Unix(timestamps[firstIdx], 0).UTC()
	endTime := time.Unix(timestamps[lastIdx], 0).UTC()
	actualYears := endTime.Sub(startTime).Hours() / 24 / daysPerYear
	if actualYears < minSpanYears {
		return Growth{Ticker: ticker}, ErrInsufficientData
	}

	startPrice := *closes[firstIdx]
	endPrice := *closes[lastIdx]
	annualized := math.Pow(endPrice/startPrice, 1/actualYears) - 1

	return Growth{
		Ticker:        ticker,
		Annualized:    annualized,
		YearsAnalyzed: actualYears,
		StartPrice:    startPrice,
		EndPrice:      endPrice,
		StartDate:     startTime.Format("2006-01-02"),
		EndDate:       endTime.Format("2006-01-02"),
	}, nil
}
