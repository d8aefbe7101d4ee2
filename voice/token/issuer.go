package token

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/internal/log"
	"github.com/imtaco/voicelink/internal/retry"
	"github.com/imtaco/voicelink/voice"
)

const (
	issuePath      = "/api/voice/token"
	defaultTimeout = 10 * time.Second
)

var (
	client = resty.New().
		SetHeader("Content-Type", "application/json")
)

// Issuer asks the backend for a room token.
type Issuer interface {
	Issue(ctx context.Context, roomID string) (voice.Token, error)
}

type issueRequest struct {
	RoomID string `json:"roomId"`
}

type issueResponse struct {
	Token     string `json:"token"`
	ServerURL string `json:"serverUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type issuerImpl struct {
	baseURL string
	timeout time.Duration
	auth    voice.AuthStore
	limiter *rate.Limiter
	retry   retry.Retry
	logger  *log.Logger
}

func NewIssuer(cfg *Config, auth voice.AuthStore, logger *log.Logger) Issuer {
	if logger == nil {
		panic("logger is required")
	}
	if auth == nil {
		panic("auth store is required")
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &issuerImpl{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		auth:    auth,
		limiter: rate.NewLimiter(limit, burst),
		retry:   retry.NewFromConfig(logger, cfg.Retry),
		logger:  logger,
	}
}

func (i *issuerImpl) Issue(ctx context.Context, roomID string) (voice.Token, error) {
	start := time.Now()
	issueRequests.Add(ctx, 1)

	authToken, err := i.auth.AuthToken(ctx)
	if err != nil {
		issueFailures.Add(ctx, 1)
		return voice.Token{}, err
	}

	var tok voice.Token
	err = i.retry.Do(ctx, func() error {
		if err := i.limiter.Wait(ctx); err != nil {
			return retry.Permanent(errors.Wrap(voice.ErrTokenIssue, err, "wait for issue slot"))
		}
		t, err := i.post(ctx, authToken, roomID)
		if err != nil {
			return err
		}
		tok = t
		return nil
	})
	issueDuration.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		issueFailures.Add(ctx, 1)
		if _, ok := errors.CodeOf(err); !ok {
			err = errors.Wrap(voice.ErrTokenIssue, err, "issue token")
		}
		return voice.Token{}, err
	}
	return tok, nil
}

// post performs one attempt. Errors that a retry cannot fix come back
// marked permanent.
func (i *issuerImpl) post(ctx context.Context, authToken, roomID string) (voice.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	reqID := uuid.NewString()
	i.logger.Debug("token req", log.Room(roomID), log.String("requestId", reqID))

	var result issueResponse
	var failure errorResponse
	resp, err := client.R().
		SetContext(ctx).
		SetAuthToken(authToken).
		SetHeader("X-Request-ID", reqID).
		SetBody(&issueRequest{RoomID: roomID}).
		SetResult(&result).
		SetError(&failure).
		Post(i.baseURL + issuePath)
	if err != nil {
		return voice.Token{}, errors.Wrap(voice.ErrTokenIssue, err, "token request")
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return voice.Token{}, retry.Permanent(
			errors.Newf(voice.ErrAuth, "token backend rejected session (code: %d, %s)", status, failure.Error))
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return voice.Token{}, errors.Newf(voice.ErrTokenIssue, "token backend unavailable (code: %d, %s)", status, failure.Error)
	case resp.IsError():
		return voice.Token{}, retry.Permanent(
			errors.Newf(voice.ErrTokenIssue, "token backend error (code: %d, %s)", status, failure.Error))
	}

	if result.Token == "" || result.ServerURL == "" {
		return voice.Token{}, retry.Permanent(
			errors.New(voice.ErrTokenIssue, "token response missing token or serverUrl"))
	}
	i.logger.Debug("token resp", log.Room(roomID), log.Int("status", status))

	return voice.Token{
		Token:     result.Token,
		ServerURL: result.ServerURL,
		RoomID:    roomID,
	}, nil
}
