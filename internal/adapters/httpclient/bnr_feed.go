package httpclient

import (
	"bnrfx/internal/domain"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxBodyBytes = 1 << 20

type BNRFeedClient struct {
	http    *http.Client
	feedURL string
	now     func() time.Time
}

// rateRecord matches <Rate currency="EUR" multiplier="1">4.9771</Rate> in any namespace.
type rateRecord struct {
	Currency   string `xml:"currency,attr"`
	Multiplier string `xml:"multiplier,attr"`
	Value      string `xml:",chardata"`
}

// Fetch downloads the feed once and returns the parsed snapshot stamped with the
// current time. Every failure wraps domain.ErrFeedUnavailable.
func (c *BNRFeedClient) Fetch(ctx context.Context) (domain.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to create request: %w", domain.ErrFeedUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to execute request: %w", domain.ErrFeedUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.RateSnapshot{}, fmt.Errorf("%w: unexpected status code %d: %s", domain.ErrFeedUnavailable, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: failed to read response body: %w", domain.ErrFeedUnavailable, err)
	}

	rates, err := parseRates(body)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}

	return domain.NewRateSnapshot(c.now(), rates), nil
}

// parseRates walks the whole document so that malformed markup anywhere is
// rejected, collecting every Rate element on the way.
func parseRates(body []byte) (map[string]float64, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	rates := make(map[string]float64)
	seenRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode feed: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		seenRoot = true
		if start.Name.Local != "Rate" {
			continue
		}

		var rec rateRecord
		if err = dec.DecodeElement(&rec, &start); err != nil {
			return nil, fmt.Errorf("failed to decode rate element: %w", err)
		}
		code, value, err := rec.normalize()
		if err != nil {
			return nil, err
		}
		rates[code] = value
	}

	if !seenRoot {
		return nil, errors.New("failed to decode feed: empty document")
	}
	return rates, nil
}

func (r rateRecord) normalize() (string, float64, error) {
	code := strings.ToUpper(strings.TrimSpace(r.Currency))
	if code == "" {
		return "", 0, errors.New("rate element without currency attribute")
	}
	if !domain.IsCurrencyCode(code) {
		return "", 0, fmt.Errorf("invalid currency code %q", r.Currency)
	}

	multiplier := 1
	if raw := strings.TrimSpace(r.Multiplier); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m <= 0 {
			return "", 0, fmt.Errorf("invalid multiplier %q for currency %q", r.Multiplier, code)
		}
		multiplier = m
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return "", 0, fmt.Errorf("invalid rate value %q for currency %q", r.Value, code)
	}

	return code, value / float64(multiplier), nil
}

func NewBNRFeedClient(httpClient *http.Client, feedURL string) *BNRFeedClient {
	return &BNRFeedClient{http: httpClient, feedURL: feedURL, now: time.Now}
}
