package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/exp/slog"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Detail)
}

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type AccessToken struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

type Me struct {
	LoggedIn bool  `json:"logged_in"`
	UserID   int64 `json:"user_id"`
}

// Entry is a vault entry as the server lists it; Secret is set only by view.
type Entry struct {
	ID          int64     `json:"id"`
	Domain      string    `json:"domain"`
	AccountName string    `json:"account_name"`
	Secret      string    `json:"secret,omitempty"`
	URL         string    `json:"url,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewEntry struct {
	Domain      string `json:"domain"`
	AccountName string `json:"account_name"`
	Secret      string `json:"secret"`
	URL         string `json:"url,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// EntryPatch leaves nil fields unchanged on the server. Secret is required.
type EntryPatch struct {
	Domain      *string `json:"domain,omitempty"`
	AccountName *string `json:"account_name,omitempty"`
	Secret      *string `json:"secret,omitempty"`
	URL         *string `json:"url,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(baseURL string, log *slog.Logger) *httpClient {
	return &httpClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		log:       log,
		baseURL:   baseURL,
		userAgent: "Primer-Client/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	return h.call(ctx, http.MethodGet, "/api/v1/health", "", nil, nil)
}

func (h *httpClient) Signup(ctx context.Context, username, email, password string) (int64, error) {
	var out struct {
		UserID int64 `json:"user_id"`
	}
	err := h.call(ctx, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	return out.UserID, err
}

func (h *httpClient) Signin(ctx context.Context, username, password string) (TokenPair, error) {
	var out TokenPair
	err := h.call(ctx, http.MethodPost, "/auth/signin", "", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

func (h *httpClient) Refresh(ctx context.Context, refreshToken string) (AccessToken, error) {
	var out AccessToken
	err := h.call(ctx, http.MethodPost, "/auth/refresh", refreshToken, nil, &out)
	return out, err
}

func (h *httpClient) Logout(ctx context.Context, accessToken string) error {
	return h.call(ctx, http.MethodPost, "/auth/logout", accessToken, nil, nil)
}

func (h *httpClient) Me(ctx context.Context, accessToken string) (Me, error) {
	var out Me
	err := h.call(ctx, http.MethodGet, "/auth/me", accessToken, nil, &out)
	return out, err
}

func (h *httpClient) SetVaultPassword(ctx context.Context, accessToken, vaultPassword string) error {
	return h.call(ctx, http.MethodPost, "/vault/set_password", accessToken,
		map[string]string{"vault_password": vaultPassword}, nil)
}

func (h *httpClient) Unlock(ctx context.Context, accessToken, vaultPassword string) error {
	return h.call(ctx, http.MethodPost, "/vault/unlock-vault", accessToken,
		map[string]string{"vault_password": vaultPassword}, nil)
}

func (h *httpClient) AddEntry(ctx context.Context, accessToken string, e NewEntry) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	err := h.call(ctx, http.MethodPost, "/vault/add", accessToken, e, &out)
	return out.ID, err
}

func (h *httpClient) ListEntries(ctx context.Context, accessToken string) ([]Entry, error) {
	var out []Entry
	err := h.call(ctx, http.MethodGet, "/vault/get-vault", accessToken, nil, &out)
	return out, err
}

func (h *httpClient) ViewEntry(ctx context.Context, accessToken string, id int64, vaultPassword string) (Entry, error) {
	var out Entry
	err := h.call(ctx, http.MethodPost, "/vault/view", accessToken, map[string]any{
		"entry_id":       id,
		"vault_password": vaultPassword,
	}, &out)
	return out, err
}

func (h *httpClient) UpdateEntry(ctx context.Context, accessToken string, id int64, p EntryPatch) error {
	return h.call(ctx, http.MethodPost, "/vault/update/"+strconv.FormatInt(id, 10), accessToken, p, nil)
}

func (h *httpClient) DeleteEntry(ctx context.Context, accessToken string, id int64) error {
	return h.call(ctx, http.MethodDelete, "/vault/delete/"+strconv.FormatInt(id, 10), accessToken, nil, nil)
}

func (h *httpClient) call(ctx context.Context, method, path, bearer string, body, result any) error {
	resp, err := h.doRequest(ctx, method, path, bearer, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path, bearer string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("сервер недоступен: %w", err)
	}
	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	// Тело не логируем: в нем могут быть токены и секреты
	h.log.Debug("Получен ответ", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var problem struct {
			Title  string `json:"title"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &problem); err == nil {
			apiErr.Detail = problem.Detail
			if apiErr.Detail == "" {
				apiErr.Detail = problem.Title
			}
		}
		return apiErr
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}
	return nil
}
