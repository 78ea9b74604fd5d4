// Package marketdata supplies OHLCV series and issuer profiles from
// the Yahoo Finance JSON API, with rate limiting, retries and an
// optional cache decorator.
package marketdata

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/pkg/config"
	"github.com/quantify701/quantify/pkg/httputil"
	"github.com/quantify701/quantify/pkg/logger"
)

const quoteSummaryModules = "price,summaryDetail,assetProfile"

// YahooClient fetches series and profiles from the Yahoo Finance v8
// chart and v10 quoteSummary endpoints.
type YahooClient struct {
	httpClient *httputil.Client
	baseURL    string
	logger     *logger.Logger
}

// NewYahooClient builds a client with the configured call budget.
func NewYahooClient(cfg *config.Config, log *logger.Logger) *YahooClient {
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Yahoo.CallsPerMinute)), 1)

	httpClient := httputil.NewWithTimeout(log, cfg.Yahoo.Timeout).
		WithRetry(3, 1*time.Second).
		WithRateLimiter(limiter).
		WithHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	return &YahooClient{
		httpClient: httpClient,
		baseURL:    cfg.Yahoo.BaseURL,
		logger:     log,
	}
}

// chart API response, nulls appear on halted sessions
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				Symbol    string   `json:"symbol"`
				LongName  string   `json:"longName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE    rawValue `json:"trailingPE"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FetchSeries returns the chronological daily series for a symbol.
// Rows with null quotes (halted sessions) are skipped.
func (c *YahooClient) FetchSeries(ctx context.Context, symbol, period, interval string) ([]contracts.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(period), url.QueryEscape(interval))

	var decoded chartResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("chart request for %s failed: %w", symbol, err)
	}

	if decoded.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 || len(decoded.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}

	result := decoded.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	points := make([]contracts.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) ||
			quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		points = append(points, contracts.PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      *quote.Open[i],
			High:      *quote.High[i],
			Low:       *quote.Low[i],
			Close:     *quote.Close[i],
			Volume:    volume,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"rows":   len(points),
	}).Debug("Fetched series")

	return points, nil
}

// FetchProfile returns issuer metadata for a symbol.
func (c *YahooClient) FetchProfile(ctx context.Context, symbol string) (*contracts.IssuerProfile, error) {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(symbol), quoteSummaryModules)

	var decoded quoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("quote summary request for %s failed: %w", symbol, err)
	}

	if decoded.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary API error for %s: %s", symbol, decoded.QuoteSummary.Error.Description)
	}
	if len(decoded.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("empty quote summary for %s", symbol)
	}

	result := decoded.QuoteSummary.Result[0]

	profile := &contracts.IssuerProfile{
		Symbol:        symbol,
		Name:          result.Price.LongName,
		Sector:        result.AssetProfile.Sector,
		Industry:      result.AssetProfile.Industry,
		PERatio:       result.SummaryDetail.TrailingPE.Raw,
		DividendYield: result.SummaryDetail.DividendYield.Raw,
	}
	if result.Price.MarketCap.Raw != nil {
		profile.MarketCap = *result.Price.MarketCap.Raw
	}

	return profile, nil
}
