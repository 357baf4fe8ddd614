package ninegag

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/gagbook/domain"
	"github.com/CrestNiraj12/gagbook/infra/auth"
)

const (
	DefaultAPIURL       = "https://api.9gag.com"
	DefaultCommentURL   = "https://comment-cdn.9gag.com"
	DefaultCommentAppID = "a_dd8f2b7d304a10edaf6f29517ea0ca4100a43d1b"

	guestPath    = "/v2/guest-token"
	postsPath    = "/v2/post-list"
	commentsPath = "/v1/comment-list.json"

	guestTokenTTL = 24 * time.Hour
	snippetLimit  = 200

	appID      = "com.ninegag.android.app"
	deviceType = "android"
	bucketName = "__DEFAULT__"
)

// Options configures a Client. Zero values fall back to the public endpoints.
type Options struct {
	APIURL       string
	CommentURL   string
	CommentAppID string
	DeviceID     string
	HTTP         *http.Client
}

// Client is a thin HTTP wrapper for the 9GAG API and comment CDN.
// It handles base URL construction and the vendor header set.
type Client struct {
	apiURL        string
	commentURL    string
	commentAppID  string
	deviceID      string
	tokenProvider auth.TokenProvider
	http          *http.Client
	now           func() time.Time
}

// NewClient creates an API client. Without a token provider requests carry an
// anonymous random token, which is what the guest-token endpoint expects.
func NewClient(opts Options) *Client {
	c := &Client{
		apiURL:       strings.TrimRight(opts.APIURL, "/"),
		commentURL:   strings.TrimRight(opts.CommentURL, "/"),
		commentAppID: opts.CommentAppID,
		deviceID:     opts.DeviceID,
		http:         opts.HTTP,
		now:          time.Now,
	}
	if c.apiURL == "" {
		c.apiURL = DefaultAPIURL
	}
	if c.commentURL == "" {
		c.commentURL = DefaultCommentURL
	}
	if c.commentAppID == "" {
		c.commentAppID = DefaultCommentAppID
	}
	if c.deviceID == "" {
		c.deviceID = NewDeviceID()
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// UseTokenProvider sets the session used for authenticated requests.
func (c *Client) UseTokenProvider(tp auth.TokenProvider) {
	c.tokenProvider = tp
}

// NewDeviceID returns a random device identifier in the vendor format (uuid without dashes).
func NewDeviceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func anonymousToken() string {
	sum := sha1.Sum([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}

type guestTokenResponse struct {
	Data struct {
		UserToken   string `json:"userToken"`
		TokenExpiry int64  `json:"tokenExpiry"`
	} `json:"data"`
}

// GuestLogin requests a guest token and its expiry.
func (c *Client) GuestLogin(ctx context.Context) (string, time.Time, error) {
	data, err := c.get(ctx, c.apiURL+guestPath, anonymousToken())
	if err != nil {
		return "", time.Time{}, err
	}
	var resp guestTokenResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: guest token: %v", domain.ErrParse, err)
	}
	if resp.Data.UserToken == "" {
		return "", time.Time{}, fmt.Errorf("%w: guest token missing", domain.ErrUnauthorized)
	}
	expiry := c.now().Add(guestTokenTTL)
	if resp.Data.TokenExpiry > 0 {
		expiry = time.Unix(resp.Data.TokenExpiry, 0)
	}
	return resp.Data.UserToken, expiry, nil
}

// Get performs a GET against the API host with the session token.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.authedGet(ctx, c.apiURL+path, query)
}

// GetComments performs a GET against the comment CDN.
func (c *Client) GetComments(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.authedGet(ctx, c.commentURL+path, query)
}

func (c *Client) authedGet(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	token := ""
	if c.tokenProvider != nil {
		t, err := c.tokenProvider.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
		token = t
	} else {
		token = anonymousToken()
	}
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	return c.get(ctx, rawURL, token)
}

func (c *Client) get(ctx context.Context, rawURL, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, token)

	op := "GET " + req.URL.Path
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.TransportError{Op: op, Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("%w (status %d)", domain.ErrUnauthorized, resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("returned %d: %s", resp.StatusCode, snippet(data))}
	}

	return data, nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("9GAG-9GAG_TOKEN", token)
	req.Header.Set("9GAG-TIMESTAMP", strconv.FormatInt(c.now().UnixMilli(), 10))
	req.Header.Set("9GAG-APP_ID", appID)
	req.Header.Set("X-Package-ID", appID)
	req.Header.Set("9GAG-DEVICE_UUID", c.deviceID)
	req.Header.Set("X-Device-UUID", c.deviceID)
	req.Header.Set("9GAG-DEVICE_TYPE", deviceType)
	req.Header.Set("9GAG-BUCKET_NAME", bucketName)
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if r := []rune(s); len(r) > snippetLimit {
		s = string(r[:snippetLimit]) + "..."
	}
	return s
}
