// Package grammar talks to a LanguageTool-compatible checking service.
package grammar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Defaults for a locally running LanguageTool server.
const (
	DefaultEndpoint = "http://localhost:8081"
	DefaultLanguage = "en-US"
	defaultTimeout  = 10 * time.Second
	checkPath       = "/v2/check"

	// maxResponseSize bounds the body read from the service.
	maxResponseSize = 8 << 20
)

// Sentinel errors for grammar checking.
var (
	ErrGrammarService = errors.New("grammar service error")
	ErrInvalidConfig  = errors.New("invalid grammar config")
)

// Span marks one issue in the checked text. Offset and Length are byte
// positions in the Go string that was checked.
type Span struct {
	Offset       int
	Length       int
	Message      string
	Rule         string
	Replacements []string
}

// Checker finds grammar and spelling issues in text.
type Checker interface {
	Check(ctx context.Context, text string) ([]Span, error)
}

// Client is a Checker backed by the LanguageTool HTTP API.
type Client struct {
	endpoint string
	language string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLanguage sets the language code sent with every request.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient creates a client for the service at endpoint.
// An empty endpoint selects DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: endpoint %q must be an http(s) URL", ErrInvalidConfig, endpoint)
	}

	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		language: DefaultLanguage,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// wire format of /v2/check
type checkResponse struct {
	Matches []struct {
		Message      string `json:"message"`
		Offset       int    `json:"offset"`
		Length       int    `json:"length"`
		Replacements []struct {
			Value string `json:"value"`
		} `json:"replacements"`
		Rule struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check submits text and returns the reported issues sorted by offset.
// Empty text is not sent and yields no spans.
func (c *Client) Check(ctx context.Context, text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+checkPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrammarService, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrGrammarService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s: %s", ErrGrammarService, resp.Status, strings.TrimSpace(string(msg)))
	}

	var body checkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrGrammarService, err)
	}

	idx := newOffsetIndex(text)
	spans := make([]Span, 0, len(body.Matches))
	for _, m := range body.Matches {
		start, ok := idx.byteOffset(m.Offset)
		if !ok {
			continue
		}
		end, ok := idx.byteOffset(m.Offset + m.Length)
		if !ok {
			end = len(text)
		}
		s := Span{
			Offset:  start,
			Length:  end - start,
			Message: m.Message,
			Rule:    m.Rule.ID,
		}
		for _, r := range m.Replacements {
			s.Replacements = append(s.Replacements, r.Value)
		}
		spans = append(spans, s)
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Offset < spans[j].Offset })
	return spans, nil
}

// offsetIndex maps UTF-16 code unit offsets, as reported by the service,
// to byte offsets in the original string.
type offsetIndex struct {
	units  []int // units[k] is the UTF-16 offset of the k-th rune
	starts []int // starts[k] is the byte offset of the k-th rune
}

func newOffsetIndex(text string) offsetIndex {
	n := utf8.RuneCountInString(text)
	idx := offsetIndex{
		units:  make([]int, 0, n+1),
		starts: make([]int, 0, n+1),
	}
	u := 0
	for i, r := range text {
		idx.units = append(idx.units, u)
		idx.starts = append(idx.starts, i)
		if r >= 0x10000 {
			u += 2
		} else {
			u++
		}
	}
	idx.units = append(idx.units, u)
	idx.starts = append(idx.starts, len(text))
	return idx
}

// byteOffset converts a UTF-16 offset. Offsets inside a surrogate pair
// or past the end are rejected.
func (x offsetIndex) byteOffset(unit int) (int, bool) {
	if unit < 0 {
		return 0, false
	}
	k := sort.SearchInts(x.units, unit)
	if k >= len(x.units) || x.units[k] != unit {
		return 0, false
	}
	return x.starts[k], true
}

// Compile-time interface check.
var _ Checker = (*Client)(nil)
