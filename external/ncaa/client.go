package ncaa

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
	"github.com/riskibarqy/fantasy-madness/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL             = "https://ncaa-api.henrygd.me"
	defaultTimeout             = 15 * time.Second
	defaultRetryBackoff        = time.Second
	defaultBoxScoreConcurrency = 4
	maxResponseBodySize        = 6 << 20
	unknownOpponent            = "Unknown"
)

var errNCAATransient = crerr.New("ncaa transient failure")

type ClientConfig struct {
	HTTPClient *fasthttp.Client
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RetryBackoff is multiplied by the attempt number between retries.
	RetryBackoff        time.Duration
	BoxScoreConcurrency int
	Logger              *logging.Logger
	CircuitBreaker      resilience.BreakerConfig
}

// Client reads the public NCAA scoreboard and box scores and translates them
// into proposed game lines.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	concurrency  int
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

var _ usecase.GameFeed = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "fantasy-madness",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	concurrency := cfg.BoxScoreConcurrency
	if concurrency < 1 {
		concurrency = defaultBoxScoreConcurrency
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		concurrency:  concurrency,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// BoxScore returns one proposed line per player in the game's box score.
func (c *Client) BoxScore(ctx context.Context, gameID string) ([]usecase.ProposedGame, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput)
	}

	var payload boxScoreEnvelope
	path := "/game/" + url.PathEscape(gameID) + "/boxscore"
	if err := c.doJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("fetch box score game_id=%s: %w", gameID, err)
	}
	return translateBoxScore(gameID, payload), nil
}

// Scoreboard returns the box score lines of every final game played on day.
// Box scores are fetched concurrently; the first failure cancels the rest.
func (c *Client) Scoreboard(ctx context.Context, day time.Time) ([]usecase.ProposedGame, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: date is required", usecase.ErrInvalidInput)
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var payload scoreboardEnvelope
	path := fmt.Sprintf("/scoreboard/basketball-men/d1/%04d/%02d/%02d", day.Year(), int(day.Month()), day.Day())
	if err := c.doJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("fetch scoreboard date=%s: %w", day.Format(time.DateOnly), err)
	}

	finals := make([]scoreboardGame, 0, len(payload.Games))
	seen := make(map[string]struct{}, len(payload.Games))
	for _, item := range payload.Games {
		gameID := strings.TrimSpace(item.Game.GameID)
		if gameID == "" || !item.Game.isFinal() {
			continue
		}
		if _, ok := seen[gameID]; ok {
			continue
		}
		seen[gameID] = struct{}{}
		finals = append(finals, item.Game)
	}
	if len(finals) == 0 {
		return []usecase.ProposedGame{}, nil
	}

	p := pool.NewWithResults[[]usecase.ProposedGame]().
		WithContext(ctx).
		WithMaxGoroutines(c.concurrency).
		WithCancelOnError().
		WithFirstError()
	for _, g := range finals {
		p.Go(func(ctx context.Context) ([]usecase.ProposedGame, error) {
			lines, err := c.BoxScore(ctx, g.GameID)
			if err != nil {
				return nil, err
			}
			playedAt := g.startedAt(day)
			for i := range lines {
				lines[i].PlayedAt = playedAt
			}
			return lines, nil
		})
	}

	batches, err := p.Wait()
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard box scores date=%s: %w", day.Format(time.DateOnly), err)
	}

	out := make([]usecase.ProposedGame, 0, len(batches)*16)
	for _, batch := range batches {
		out = append(out, batch...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExternalGameID < out[j].ExternalGameID
	})
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	fullURL := c.baseURL + path

	out, err, _ := c.flight.Do(path, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			body, reqErr := c.executeRequest(ctx, fullURL)
			raw = body
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})
	if err != nil {
		switch {
		case stderrors.Is(err, resilience.ErrCircuitOpen):
			c.logger.WarnContext(ctx, "ncaa circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return fmt.Errorf("%w: ncaa stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		case stderrors.Is(err, errNCAATransient),
			stderrors.Is(err, context.DeadlineExceeded),
			stderrors.Is(err, context.Canceled):
			return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		default:
			return err
		}
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.get(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errNCAATransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case status == fasthttp.StatusNotFound:
			return nil, fmt.Errorf("%w: provider has no resource at %s", usecase.ErrNotFound, strings.TrimPrefix(fullURL, c.baseURL))
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errNCAATransient, status, abbreviateBody(raw))
		default:
			return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "ncaa request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	// resp is released on return, so the body must be copied.
	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func translateBoxScore(gameID string, payload boxScoreEnvelope) []usecase.ProposedGame {
	out := make([]usecase.ProposedGame, 0, 32)
	for i, t := range payload.Teams {
		school := t.label()
		if school == "" {
			continue
		}
		opponent := unknownOpponent
		for j, other := range payload.Teams {
			if j != i && other.label() != "" {
				opponent = other.label()
				break
			}
		}
		for _, p := range t.Players {
			name := p.label()
			if name == "" {
				continue
			}
			out = append(out, usecase.ProposedGame{
				ExternalGameID: gameID,
				PlayerName:     name,
				SourceTeam:     school,
				Opponent:       opponent,
				PointsScored:   int(p.Points),
			})
		}
	}
	return out
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errNCAATransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
