package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hktools/hk-grid-service/internal/domain"
	"github.com/hktools/hk-grid-service/internal/observability"
)

// Direction selects which way a conversion runs.
type Direction string

const (
	DirectionForward Direction = "wgs84-to-grid"
	DirectionReverse Direction = "grid-to-wgs84"
)

// ParseDirection validates a direction string from a request.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionForward, DirectionReverse:
		return d, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Row statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// outsideHKWarning is the advisory attached to points that parse fine but
// fall outside the Hong Kong operational bounds.
const outsideHKWarning = "coordinates are outside of Hong Kong bounds"

// SingleResult is the outcome of one successful conversion.
type SingleResult struct {
	Output  string           `json:"output"`
	Warning string           `json:"warning,omitempty"`
	Point   *domain.GeoPoint `json:"point,omitempty"`
}

// Row is one line's outcome within a bulk conversion.
type Row struct {
	Index   int              `json:"index"`
	Input   string           `json:"input"`
	Output  string           `json:"output"`
	Status  string           `json:"status"`
	Warning string           `json:"warning,omitempty"`
	Point   *domain.GeoPoint `json:"point,omitempty"`
}

// BulkResult aggregates a bulk conversion: per-row outcomes in input order,
// map points for the successful rows, a newline-joined list of bare values
// for clipboard copy, and a numbered plain-text block for file export.
type BulkResult struct {
	Rows         []Row             `json:"rows"`
	Points       []domain.GeoPoint `json:"points,omitempty"`
	CopyText     string            `json:"copy_text"`
	DownloadText string            `json:"download_text"`
	Filename     string            `json:"filename"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// LocateResult is the outcome of a unified search: both representations of
// the located position.
type LocateResult struct {
	Point   domain.GeoPoint `json:"point"`
	GridRef string          `json:"grid_ref"`
	Warning string          `json:"warning,omitempty"`
}

// Service orchestrates parsing, remote transformation, and result
// formatting for single, bulk, and search conversions.
type Service struct {
	transformer domain.Transformer
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewService creates a conversion service.
func NewService(transformer domain.Transformer, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		transformer: transformer,
		logger:      logger,
		metrics:     metrics,
	}
}

// Single converts one input string in the given direction.
func (s *Service) Single(ctx context.Context, dir Direction, input string) (SingleResult, error) {
	output, point, warning, err := s.convertLine(ctx, dir, input)
	if err != nil {
		s.metrics.ConversionsTotal.WithLabelValues(directionLabel(dir), "error").Inc()
		return SingleResult{}, err
	}
	s.metrics.ConversionsTotal.WithLabelValues(directionLabel(dir), "success").Inc()
	return SingleResult{Output: output, Warning: warning, Point: point}, nil
}

// Bulk converts each non-empty trimmed line of text independently. N input
// lines produce exactly N rows in input order; one line's failure never
// aborts the batch.
func (s *Service) Bulk(ctx context.Context, dir Direction, text string) BulkResult {
	start := time.Now()
	lines := splitLines(text)

	rows := make([]Row, 0, len(lines))
	var points []domain.GeoPoint
	failures := 0

	for i, line := range lines {
		row := Row{Index: i + 1, Input: line}
		output, point, warning, err := s.convertLine(ctx, dir, line)
		if err != nil {
			row.Output = "Error: " + ErrorMessage(err)
			row.Status = StatusError
			failures++
			s.metrics.ConversionsTotal.WithLabelValues(directionLabel(dir), "error").Inc()
		} else {
			row.Output = output
			row.Status = StatusOK
			row.Warning = warning
			row.Point = point
			if point != nil {
				points = append(points, *point)
			}
			s.metrics.ConversionsTotal.WithLabelValues(directionLabel(dir), "success").Inc()
		}
		rows = append(rows, row)
	}

	inLabel, outLabel, filename := exportLabels(dir)
	result := BulkResult{
		Rows:         rows,
		Points:       points,
		CopyText:     copyText(rows),
		DownloadText: downloadText(rows, inLabel, outLabel),
		Filename:     filename,
		GeneratedAt:  clock.Now(),
	}

	s.metrics.BulkLines.Observe(float64(len(lines)))
	s.metrics.BulkDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("bulk conversion finished",
		"direction", dir,
		"lines", len(lines),
		"failures", failures,
	)
	return result
}

// Locate interprets input as either a coordinate or a grid reference and
// returns both representations of the position.
func (s *Service) Locate(ctx context.Context, input string) (LocateResult, error) {
	parsed, err := domain.ParseAny(input)
	if err != nil {
		s.metrics.ParseFailures.WithLabelValues(errorKind(err)).Inc()
		return LocateResult{}, err
	}

	switch parsed.Kind {
	case domain.KindGrid:
		point, err := s.transformer.Reverse(ctx, parsed.Grid)
		if err != nil {
			return LocateResult{}, err
		}
		return LocateResult{Point: point, GridRef: parsed.Grid.String(), Warning: boundsWarning(point)}, nil
	default:
		result, err := s.transformer.Forward(ctx, parsed.Point)
		if err != nil {
			return LocateResult{}, err
		}
		return LocateResult{Point: parsed.Point, GridRef: result.String(), Warning: boundsWarning(parsed.Point)}, nil
	}
}

// convertLine runs a single conversion and formats its output value.
func (s *Service) convertLine(ctx context.Context, dir Direction, line string) (string, *domain.GeoPoint, string, error) {
	switch dir {
	case DirectionReverse:
		ref, err := domain.ParseGridReference(line)
		if err != nil {
			s.metrics.ParseFailures.WithLabelValues(errorKind(err)).Inc()
			return "", nil, "", err
		}
		point, err := s.transformer.Reverse(ctx, ref)
		if err != nil {
			return "", nil, "", err
		}
		return point.String(), &point, boundsWarning(point), nil
	default:
		point, err := domain.ParseCoordinate(line)
		if err != nil {
			s.metrics.ParseFailures.WithLabelValues(errorKind(err)).Inc()
			return "", nil, "", err
		}
		result, err := s.transformer.Forward(ctx, point)
		if err != nil {
			return "", nil, "", err
		}
		return result.String(), &point, boundsWarning(point), nil
	}
}

func boundsWarning(point domain.GeoPoint) string {
	if point.InHongKong() {
		return ""
	}
	return outsideHKWarning
}

func directionLabel(dir Direction) string {
	if dir == DirectionReverse {
		return "reverse"
	}
	return "forward"
}

// splitLines returns the non-empty trimmed lines of a multi-line input.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ErrorMessage renders an error for user-facing result cells.
func ErrorMessage(err error) string {
	var remote *domain.RemoteError
	switch {
	case errors.As(err, &remote):
		if remote.Message != "" {
			return remote.Message
		}
		return remote.Error()
	case errors.Is(err, domain.ErrInvalidFormat):
		return "invalid format"
	case errors.Is(err, domain.ErrOutOfRange):
		return "latitude or longitude out of range"
	case errors.Is(err, domain.ErrInvalidPrefix):
		return "grid prefix must be GE, HE, JK, or KK"
	case errors.Is(err, domain.ErrInvalidDigits):
		return "grid reference needs digits after the prefix"
	case errors.Is(err, domain.ErrOddDigitCount):
		return "grid reference needs an even number of digits"
	case errors.Is(err, domain.ErrNetwork):
		return "transform service unreachable"
	case errors.Is(err, domain.ErrInvalidResponse):
		return "transform service returned an unexpected response"
	}
	return err.Error()
}

// errorKind maps an error to its metrics label.
func errorKind(err error) string {
	var remote *domain.RemoteError
	switch {
	case errors.As(err, &remote):
		return "remote_error"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, domain.ErrInvalidPrefix):
		return "invalid_prefix"
	case errors.Is(err, domain.ErrInvalidDigits):
		return "invalid_digits"
	case errors.Is(err, domain.ErrOddDigitCount):
		return "odd_digit_count"
	case errors.Is(err, domain.ErrNetwork):
		return "network_error"
	case errors.Is(err, domain.ErrInvalidResponse):
		return "invalid_response"
	}
	return "unknown"
}
