package geodetic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hktools/hk-grid-service/internal/domain"
	"github.com/hktools/hk-grid-service/internal/observability"
)

// DefaultBaseURL is the Hong Kong Lands Department transform API endpoint.
const DefaultBaseURL = "https://www.geodetic.gov.hk/transform/v2/"

// Client implements domain.Transformer against the Lands Department
// transform API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a transform API client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// Forward converts a WGS84 point to a grid reference.
func (c *Client) Forward(ctx context.Context, point domain.GeoPoint) (domain.GridResult, error) {
	resp, err := c.doRequest(ctx, forwardParams(point), "forward")
	if err != nil {
		return domain.GridResult{}, err
	}

	zone := resp.UTMRefZone
	easting := fieldString(resp.UTMRefE)
	northing := fieldString(resp.UTMRefN)
	if zone == "" || easting == "" || northing == "" {
		c.metrics.TransformRequests.WithLabelValues("forward", "invalid_response").Inc()
		return domain.GridResult{}, fmt.Errorf("response missing grid reference fields: %w", domain.ErrInvalidResponse)
	}

	c.metrics.TransformRequests.WithLabelValues("forward", "success").Inc()
	return domain.GridResult{Zone: zone, Easting: easting, Northing: northing}, nil
}

// Reverse converts a grid reference to a WGS84 point.
func (c *Client) Reverse(ctx context.Context, ref domain.GridReference) (domain.GeoPoint, error) {
	resp, err := c.doRequest(ctx, reverseParams(ref), "reverse")
	if err != nil {
		return domain.GeoPoint{}, err
	}

	if resp.WGSLat == nil || resp.WGSLong == nil {
		c.metrics.TransformRequests.WithLabelValues("reverse", "invalid_response").Inc()
		return domain.GeoPoint{}, fmt.Errorf("response missing latitude/longitude fields: %w", domain.ErrInvalidResponse)
	}

	point, err := domain.NewGeoPoint(*resp.WGSLat, *resp.WGSLong)
	if err != nil {
		c.metrics.TransformRequests.WithLabelValues("reverse", "invalid_response").Inc()
		return domain.GeoPoint{}, fmt.Errorf("response coordinates invalid (%v): %w", err, domain.ErrInvalidResponse)
	}

	c.metrics.TransformRequests.WithLabelValues("reverse", "success").Inc()
	return point, nil
}

func (c *Client) doRequest(ctx context.Context, params url.Values, direction string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.TransformAPIDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.TransformRequests.WithLabelValues(direction, "network_error").Inc()
		return nil, fmt.Errorf("%s transform request failed (%v): %w", direction, err, domain.ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.TransformRequests.WithLabelValues(direction, "network_error").Inc()
		return nil, fmt.Errorf("%s transform request: status %d: %w", direction, resp.StatusCode, domain.ErrNetwork)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.metrics.TransformRequests.WithLabelValues(direction, "invalid_response").Inc()
		return nil, fmt.Errorf("decode response: %w", domain.ErrInvalidResponse)
	}

	if apiResp.ErrorCode != nil {
		c.metrics.TransformRequests.WithLabelValues(direction, "remote_error").Inc()
		remoteErr := &domain.RemoteError{Code: fieldString(apiResp.ErrorCode), Message: apiResp.ErrorMsg}
		c.logger.Warn("transform service reported an error",
			"direction", direction,
			"code", remoteErr.Code,
			"message", remoteErr.Message,
		)
		return nil, remoteErr
	}

	return &apiResp, nil
}

// forwardParams builds the query for a WGS84 → grid request. The encoded
// form of these values (keys sorted) doubles as the cache key.
func forwardParams(point domain.GeoPoint) url.Values {
	return url.Values{
		"inSys": {"wgsgeog"},
		"lat":   {strconv.FormatFloat(point.Lat, 'f', -1, 64)},
		"long":  {strconv.FormatFloat(point.Lon, 'f', -1, 64)},
	}
}

// reverseParams builds the query for a grid → WGS84 request. The zone
// parameter is the zone-qualified square, e.g. "50Q-KK".
func reverseParams(ref domain.GridReference) url.Values {
	return url.Values{
		"inSys":  {"utmref"},
		"outSys": {"wgsgeog"},
		"zone":   {ref.UTMZone() + "-" + ref.SquareID},
		"e":      {ref.Easting()},
		"n":      {ref.Northing()},
	}
}

// Transform API response. Easting/northing and error codes arrive as either
// strings or numbers depending on the endpoint, so those fields decode
// loosely and are stringified by fieldString.
type apiResponse struct {
	ErrorCode  any      `json:"ErrorCode,omitempty"`
	ErrorMsg   string   `json:"ErrorMsg,omitempty"`
	UTMRefZone string   `json:"utmRefZone,omitempty"`
	UTMRefE    any      `json:"utmRefE,omitempty"`
	UTMRefN    any      `json:"utmRefN,omitempty"`
	WGSLat     *float64 `json:"wgsLat,omitempty"`
	WGSLong    *float64 `json:"wgsLong,omitempty"`
}

func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
