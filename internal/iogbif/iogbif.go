// Package iogbif implements gbif.Client on top of the GBIF REST API.
package iogbif

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/gbifreport/pkg/config"
	"github.com/gnames/gbifreport/pkg/gbif"
	"github.com/sethgrid/pester"
)

type client struct {
	baseURL  string
	user     string
	password string

	// api is used for metadata calls and has a timeout.
	api *pester.Client

	// fetch streams archives, which can take long, and has no timeout.
	fetch *pester.Client
}

// New creates a GBIF API client from configuration.
func New(cfg *config.Config) gbif.Client {
	res := client{
		baseURL:  cfg.GBIF.BaseURL,
		user:     cfg.GBIF.User,
		password: cfg.GBIF.Password,
		api:      newPester(&http.Client{Timeout: cfg.GBIF.Timeout}, cfg.GBIF.MaxRetries),
		fetch:    newPester(&http.Client{}, cfg.GBIF.MaxRetries),
	}
	return &res
}

func newPester(hc *http.Client, retries int) *pester.Client {
	res := pester.NewExtendedClient(hc)
	res.Concurrency = 1
	// pester counts attempts, not retries
	res.MaxRetries = retries + 1
	res.Backoff = pester.ExponentialJitterBackoff
	res.RetryOnHTTP429 = true
	res.LogHook = func(e pester.ErrEntry) {
		slog.Warn("GBIF request attempt failed",
			"method", e.Method,
			"url", e.URL,
			"attempt", e.Attempt,
			"error", e.Err,
		)
	}
	return res
}

// SubmitDownload implements gbif.Client.
func (c *client) SubmitDownload(
	ctx context.Context,
	dr gbif.DownloadRequest,
) (string, error) {
	u := c.baseURL + "/occurrence/download/request"
	body, err := json.Marshal(dr)
	if err != nil {
		return "", RequestError(u, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, u, bytes.NewReader(body),
	)
	if err != nil {
		return "", RequestError(u, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.api.Do(req)
	if err != nil {
		return "", RequestError(u, err)
	}
	defer resp.Body.Close()

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", RequestError(u, err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", StatusError(u, resp.StatusCode, string(bs))
	}

	key := strings.TrimSpace(string(bs))
	if key == "" {
		return "", DecodeError(u, fmt.Errorf("empty download key"))
	}
	return key, nil
}

// DownloadStatus implements gbif.Client.
func (c *client) DownloadStatus(
	ctx context.Context,
	key string,
) (gbif.DownloadMeta, error) {
	var res gbif.DownloadMeta
	u := c.baseURL + "/occurrence/download/" + url.PathEscape(key)
	err := c.getJSON(ctx, u, &res)
	return res, err
}

// FetchDownload implements gbif.Client.
func (c *client) FetchDownload(
	ctx context.Context,
	meta gbif.DownloadMeta,
	w io.Writer,
	total func(int64),
) (int64, error) {
	u := meta.DownloadURL
	if u == "" {
		u = c.baseURL + "/occurrence/download/request/" + url.PathEscape(meta.Key)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, RequestError(u, err)
	}

	resp, err := c.fetch.Do(req)
	if err != nil {
		return 0, RequestError(u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, StatusError(u, resp.StatusCode, string(bs))
	}

	if total != nil {
		size := resp.ContentLength
		if size < 0 && meta.Size > 0 {
			size = meta.Size
		}
		total(size)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, RequestError(u, err)
	}
	return n, nil
}

// SearchLiterature implements gbif.Client.
func (c *client) SearchLiterature(
	ctx context.Context,
	q gbif.LiteratureQuery,
) (gbif.LiteraturePage, error) {
	var res gbif.LiteraturePage
	params := url.Values{}
	params.Set("gbifDatasetKey", q.DatasetKey)
	if q.Year > 0 {
		params.Set("year", strconv.Itoa(q.Year))
	}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	u := c.baseURL + "/literature/search?" + params.Encode()
	err := c.getJSON(ctx, u, &res)
	return res, err
}

// Dataset implements gbif.Client.
func (c *client) Dataset(ctx context.Context, key string) (gbif.Dataset, error) {
	var res gbif.Dataset
	u := c.baseURL + "/dataset/" + url.PathEscape(key)
	err := c.getJSON(ctx, u, &res)
	return res, err
}

// SuggestOrganizations implements gbif.Client.
func (c *client) SuggestOrganizations(
	ctx context.Context,
	q string,
) ([]gbif.Organization, error) {
	var res []gbif.Organization
	u := c.baseURL + "/organization/suggest?q=" + url.QueryEscape(q)
	err := c.getJSON(ctx, u, &res)
	return res, err
}

func (c *client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return RequestError(u, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return RequestError(u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return StatusError(u, resp.StatusCode, string(bs))
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return DecodeError(u, err)
	}
	return nil
}
