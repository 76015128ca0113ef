// Package codesign talks to the design tool's screen API.
package codesign

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/MalithGihan/annotation-extractor/internal/ingest"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

const DefaultBaseURL = "https://codesign.qq.com"

// ErrStatus marks responses outside the 2xx range.
var ErrStatus = errors.New("API request failed")

type Client struct {
	BaseURL string
	// Cookie is sent verbatim; the API only answers logged-in sessions.
	Cookie string
	HTTP   *http.Client
}

// New returns a client for baseURL. A zero timeout means requests only
// end with their context.
func New(baseURL, cookie string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Cookie:  cookie,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Screens lists the first page (up to 100) of screens in a design.
func (c *Client) Screens(ctx context.Context, designID string) ([]types.Screen, error) {
	q := url.Values{}
	q.Set("design_id", designID)
	q.Set("per_page", "100")
	q.Set("total", "1000")
	q.Set("page", "1")
	u := c.BaseURL + "/api/designs/" + url.PathEscape(designID) + "/screens?" + q.Encode()

	b, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	return decodeScreens(b)
}

// ScreenDetail fetches a single screen, which carries its meta_url.
func (c *Client) ScreenDetail(ctx context.Context, designID, screenID string) (types.ScreenDetail, error) {
	u := c.BaseURL + "/api/designs/" + url.PathEscape(designID) + "/screens/" + url.PathEscape(screenID)
	b, err := c.get(ctx, u)
	if err != nil {
		return types.ScreenDetail{}, err
	}
	var d types.ScreenDetail
	if err := json.Unmarshal(b, &d); err != nil {
		return types.ScreenDetail{}, errors.Wrap(err, "decode screen detail")
	}
	return d, nil
}

// MetaDocument downloads and validates the annotation document at metaURL.
func (c *Client) MetaDocument(ctx context.Context, metaURL string) (types.MetaDocument, error) {
	b, err := c.get(ctx, c.resolve(metaURL))
	if err != nil {
		return types.MetaDocument{}, err
	}
	return ingest.DecodeBytes(b)
}

// resolve makes host-relative meta URLs absolute against BaseURL.
func (c *Client) resolve(ref string) string {
	base, err := url.Parse(c.BaseURL + "/")
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.Cookie != "" {
		req.Header.Set("Cookie", c.Cookie)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", u)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Mark(errors.Newf("API request failed with status: %d", resp.StatusCode), ErrStatus)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", u)
	}
	return b, nil
}

// decodeScreens accepts both a bare list and a {"data": [...]} envelope.
func decodeScreens(b []byte) ([]types.Screen, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var list []types.Screen
		if err := json.Unmarshal(b, &list); err != nil {
			return nil, errors.Wrap(err, "decode screens")
		}
		return list, nil
	}
	var env types.ScreenList
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, errors.Wrap(err, "decode screens")
	}
	return env.Data, nil
}
