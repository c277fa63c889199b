package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTable = "card_game_scores"

// SupabaseStore talks to a Supabase project's PostgREST endpoint.
type SupabaseStore struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

// NewSupabaseStore creates a remote store backed by the given Supabase
// project. baseURL is the project URL without a trailing slash, apiKey
// the anon key.
func NewSupabaseStore(baseURL, apiKey string) *SupabaseStore {
	return &SupabaseStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		table:   defaultTable,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Insert pushes one record. A unique violation on client_id maps to
// ErrDuplicate so reconciliation can treat the record as already
// synced.
func (s *SupabaseStore) Insert(ctx context.Context, record *Record) error {
	payload := map[string]interface{}{
		"client_id":     record.ClientID,
		"player_name":   record.PlayerName,
		"score":         record.Score,
		"level":         record.Level,
		"cards_flipped": record.CardsFlipped,
		"time_taken":    record.TimeTaken,
		"completed_at":  record.CompletedAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tableURL(nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return ErrDuplicate
	case resp.StatusCode >= 400:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("insert failed with status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// List fetches records ordered by score descending.
func (s *SupabaseStore) List(ctx context.Context, level, limit int) ([]*Record, error) {
	query := url.Values{}
	query.Set("select", "client_id,player_name,score,level,cards_flipped,time_taken,completed_at")
	query.Set("order", "score.desc,completed_at.asc")
	if level > 0 {
		query.Set("level", "eq."+strconv.Itoa(level))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("list failed with status %d: %s", resp.StatusCode, detail)
	}

	var records []*Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	for _, record := range records {
		record.Origin = OriginRemote
	}
	return records, nil
}

// ListByPlayer fetches one player's records ordered by score descending.
func (s *SupabaseStore) ListByPlayer(ctx context.Context, playerName string) ([]*Record, error) {
	query := url.Values{}
	query.Set("select", "client_id,player_name,score,level,cards_flipped,time_taken,completed_at")
	query.Set("order", "score.desc,completed_at.asc")
	query.Set("player_name", "eq."+playerName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("player query failed with status %d: %s", resp.StatusCode, detail)
	}

	var records []*Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	for _, record := range records {
		record.Origin = OriginRemote
	}
	return records, nil
}

// Ping issues a minimal query against the table.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", "client_id")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(query), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}
	return nil
}

func (s *SupabaseStore) tableURL(query url.Values) string {
	u := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *SupabaseStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
}
