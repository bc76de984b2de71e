package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/internal/utils"
	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	apiPrefix = "/pass/v1"

	// traceIDHeader carries the sync pass id so remote logs can be matched
	// with the client's.
	traceIDHeader = "X-Trace-ID"
)

type httpRemoteAdapter struct {
	client   *utils.HTTPClient
	pageSize int

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs an HTTP/REST implementation of
// [RemoteAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout. adapterCfg.Token, when set, becomes
// the initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := NormalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	pageSize := adapterCfg.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	h := &httpRemoteAdapter{
		client:   utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		pageSize: pageSize,
		logger:   logger,
	}
	h.SetToken(adapterCfg.Token)

	return h, nil
}

// NormalizeBaseURL turns "host:port" or a full URL into a scheme-qualified
// base URL without a trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteAdapter].
func (h *httpRemoteAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}

// Token implements [RemoteAdapter].
func (h *httpRemoteAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetShares implements [RemoteAdapter]. GET /pass/v1/share.
func (h *httpRemoteAdapter) GetShares(ctx context.Context) ([]models.Share, error) {
	var sr models.SharesResponse
	if err := h.get(ctx, "get shares", apiPrefix+"/share", nil, &sr); err != nil {
		return nil, err
	}
	return sr.Shares, nil
}

// GetLastEventID implements [RemoteAdapter]. GET /pass/v1/share/{id}/event.
func (h *httpRemoteAdapter) GetLastEventID(ctx context.Context, shareID string) (string, error) {
	var er models.LastEventIDResponse
	if err := h.get(ctx, "get last event id", sharePath(shareID, "event"), nil, &er); err != nil {
		return "", err
	}
	if er.EventID == "" {
		return "", fmt.Errorf("%w: empty event id for share %s", ErrInvalidResponse, shareID)
	}
	return er.EventID, nil
}

// GetEvents implements [RemoteAdapter].
// GET /pass/v1/share/{id}/event/{lastEventID}.
func (h *httpRemoteAdapter) GetEvents(ctx context.Context, shareID, lastEventID string) (models.SyncEvents, error) {
	var er models.EventsResponse
	path := sharePath(shareID, "event", lastEventID)
	if err := h.get(ctx, "get events", path, nil, &er); err != nil {
		return models.SyncEvents{}, err
	}

	events := er.Events
	for i := range events.UpdatedItems {
		events.UpdatedItems[i].ShareID = shareID
	}
	return events, nil
}

// GetShareKeys implements [RemoteAdapter].
// GET /pass/v1/share/{id}/key?Page=&PageSize=.
func (h *httpRemoteAdapter) GetShareKeys(ctx context.Context, shareID string) ([]models.ShareKey, error) {
	return fetchAllPages(ctx, h.pageSize, func(ctx context.Context, page models.PageRequest) ([]models.ShareKey, int, error) {
		var kr models.ShareKeysResponse
		if err := h.get(ctx, "get share keys", sharePath(shareID, "key"), &page, &kr); err != nil {
			return nil, 0, err
		}
		return kr.ShareKeys.Keys, kr.ShareKeys.Total, nil
	})
}

// GetItems implements [RemoteAdapter].
// GET /pass/v1/share/{id}/item?Page=&PageSize=.
func (h *httpRemoteAdapter) GetItems(ctx context.Context, shareID string) ([]models.Item, error) {
	items, err := fetchAllPages(ctx, h.pageSize, func(ctx context.Context, page models.PageRequest) ([]models.Item, int, error) {
		var ir models.ItemsResponse
		if err := h.get(ctx, "get items", sharePath(shareID, "item"), &page, &ir); err != nil {
			return nil, 0, err
		}
		return ir.Items.RevisionsData, ir.Items.Total, nil
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].ShareID = shareID
	}
	return items, nil
}

// fetchAllPages walks a zero-based paginated listing until Total entries were
// collected or a page comes back empty.
func fetchAllPages[T any](ctx context.Context, pageSize int, fetch func(context.Context, models.PageRequest) ([]T, int, error)) ([]T, error) {
	var all []T
	for page := 0; ; page++ {
		entries, total, err := fetch(ctx, models.PageRequest{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}

		all = append(all, entries...)
		if len(entries) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (h *httpRemoteAdapter) get(ctx context.Context, op, path string, page *models.PageRequest, result any) error {
	log := logger.FromContext(ctx)

	req := h.authedRequest(ctx)
	if page != nil {
		req.SetQueryParams(map[string]string{
			"Page":     strconv.Itoa(page.Page),
			"PageSize": strconv.Itoa(page.PageSize),
		})
	}

	resp, err := req.Get(path)
	if err != nil {
		log.Err(err).
			Str("func", "httpRemoteAdapter.get").
			Str("op", op).
			Msg("remote request failed")
		return fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).
			Str("func", "httpRemoteAdapter.get").
			Str("op", op).
			Int("status", resp.StatusCode()).
			Msg("remote returned an error status")
		return err
	}

	if err = json.Unmarshal(resp.Body(), result); err != nil {
		log.Err(err).
			Str("func", "httpRemoteAdapter.get").
			Str("op", op).
			Msg("failed to decode remote response")
		return fmt.Errorf("%w: decode %s response: %w", ErrInvalidResponse, op, err)
	}

	return nil
}

func (h *httpRemoteAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	if syncID, ok := utils.GetSyncIDFromContext(ctx); ok {
		req.SetHeader(traceIDHeader, syncID)
	}
	return req
}

func sharePath(shareID string, parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, url.PathEscape(shareID))
	for _, p := range parts {
		segments = append(segments, url.PathEscape(p))
	}
	return apiPrefix + "/share/" + strings.Join(segments, "/")
}
