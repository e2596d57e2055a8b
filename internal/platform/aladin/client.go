// Package aladin is a thin client for the Aladin TTB open API, the external
// bibliographic catalog behind the resolution pipeline.
package aladin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const apiVersion = "20131101"

// Target selects one of the three sub-catalogs a text search fans out over.
type Target string

const (
	TargetBook    Target = "Book"
	TargetForeign Target = "Foreign"
	TargetEBook   Target = "eBook"
)

// SearchTargets is the fan-out order for a text search.
var SearchTargets = []Target{TargetBook, TargetForeign, TargetEBook}

// Config carries the credentials and endpoint for the API. It is passed into
// NewClient once and never mutated.
type Config struct {
	BaseURL string
	TTBKey  string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

// ItemAuthor is one entry of the structured author list under subInfo.
type ItemAuthor struct {
	AuthorName string `json:"authorName"`
	AuthorType string `json:"authorType"`
}

// SubInfo holds the optional nested fields of an item. The page count here is
// the fallback when the top-level itemPage is missing.
type SubInfo struct {
	ItemPage int          `json:"itemPage"`
	Authors  []ItemAuthor `json:"authors"`
}

// Item is one raw record of a search or lookup response. All fields are
// optional; mallType distinguishes books from the rest of the general
// merchandise catalog (music, video, ...).
type Item struct {
	Title              string  `json:"title"`
	Author             string  `json:"author"`
	Cover              string  `json:"cover"`
	Publisher          string  `json:"publisher"`
	ISBN               string  `json:"isbn"`
	ISBN13             string  `json:"isbn13"`
	ItemPage           int     `json:"itemPage"`
	PubDate            string  `json:"pubDate"`
	CustomerReviewRank float64 `json:"customerReviewRank"`
	MallType           string  `json:"mallType"`
	CategoryName       string  `json:"categoryName"`
	SubInfo            SubInfo `json:"subInfo"`
}

type itemResponse struct {
	Version      string `json:"version"`
	TotalResults int    `json:"totalResults"`
	Items        []Item `json:"item"`
}

// Search queries one sub-catalog. maxResults caps the page size and start is
// the 1-based offset.
func (c *Client) Search(ctx context.Context, target Target, query string, maxResults, start int) ([]Item, error) {
	u := fmt.Sprintf(
		"%s/ItemSearch.aspx?ttbkey=%s&Query=%s&QueryType=Keyword&MaxResults=%d&start=%d&SearchTarget=%s&output=js&Version=%s",
		c.cfg.BaseURL, c.cfg.TTBKey, url.QueryEscape(query), maxResults, start, target, apiVersion,
	)
	return c.get(ctx, u)
}

// Lookup fetches the single item for an ISBN-13. OptResult=authors asks for
// the structured author list under subInfo.
func (c *Client) Lookup(ctx context.Context, isbn13 string) ([]Item, error) {
	u := fmt.Sprintf(
		"%s/ItemLookUp.aspx?ttbkey=%s&itemIdType=ISBN13&ItemId=%s&output=js&Version=%s&OptResult=authors",
		c.cfg.BaseURL, c.cfg.TTBKey, url.QueryEscape(isbn13), apiVersion,
	)
	return c.get(ctx, u)
}

func (c *Client) get(ctx context.Context, u string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var res itemResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return res.Items, nil
}
