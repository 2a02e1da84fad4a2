// Package store implements the Paprika sync API v2 client: authentication,
// recipe fetching with a hash-validated cache, and field persistence.
// It is the external collaborator boundary for the recipe core; all query
// and mutation logic lives in internal/recipe.
package store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/briantkatch/paprika-mcp/internal/config"
	"github.com/briantkatch/paprika-mcp/internal/errors"
	"github.com/briantkatch/paprika-mcp/internal/recipe"
)

// defaultUserAgent mimics the official Paprika client; the API rejects
// generic Go user agents.
const defaultUserAgent = "Paprika Recipe Manager 3/3.6.1"

// fetchConcurrency bounds parallel per-recipe fetches during a full sync.
const fetchConcurrency = 8

// memoryCacheSize bounds the in-process recipe cache.
const memoryCacheSize = 512

// Store is the read/write boundary the MCP layer depends on.
type Store interface {
	// Recipes returns the non-trashed recipes of the account, sorted
	// alphabetically by name.
	Recipes(ctx context.Context) ([]*recipe.Record, error)

	// Recipe returns a single recipe by UID.
	Recipe(ctx context.Context, uid string) (*recipe.Record, error)

	// Categories returns the account's category list.
	Categories(ctx context.Context) ([]Category, error)

	// UpdateField persists a new value for one field of one recipe.
	// All other recipe data passes through unchanged.
	UpdateField(ctx context.Context, uid, field, newValue string) error
}

// Client talks to the Paprika sync API v2.
type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string
	password   string
	userAgent  string
	logger     *slog.Logger

	cache  *DirectoryCache
	memory *lru.Cache[string, cachedRecipe]

	mu    sync.Mutex
	token string
}

// cachedRecipe pairs a parsed record with its raw JSON so updates can pass
// unknown metadata through unchanged.
type cachedRecipe struct {
	record *recipe.Record
	raw    json.RawMessage
}

// indexEntry is one row of the sync index: recipe UID plus content hash.
type indexEntry struct {
	UID  string `json:"uid"`
	Hash string `json:"hash"`
}

// apiEnvelope is the standard Paprika API response wrapper.
type apiEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *apiError       `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// New creates a Client from config. Credentials must be present; the
// bearer token is obtained lazily on first use.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	email, password, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}

	cache, err := NewDirectoryCache(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	memory, err := lru.New[string, cachedRecipe](memoryCacheSize)
	if err != nil {
		return nil, errors.InternalError("create memory cache", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		email:      email,
		password:   password,
		userAgent:  userAgent,
		logger:     logger,
		cache:      cache,
		memory:     memory,
	}, nil
}

// Login authenticates and stores the bearer token.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/account/login/", strings.NewReader(form.Encode()))
	if err != nil {
		return errors.NetworkError("build login request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("login request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.New(errors.ErrCodeAuthFailed,
			"Paprika rejected the credentials", nil).
			WithSuggestion("Verify your email and password with 'paprika-mcp setup', " +
				"or set PAPRIKA_USER_AGENT to mimic the official app.")
	}

	var login struct {
		Result struct {
			Token string `json:"token"`
		} `json:"result"`
		Error *apiError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return errors.Wrap(errors.ErrCodeAPIResponse, fmt.Errorf("decode login response: %w", err))
	}
	if login.Error != nil {
		return errors.Newf(errors.ErrCodeAuthFailed, "login failed: %s", login.Error.Message)
	}
	if login.Result.Token == "" {
		return errors.New(errors.ErrCodeAuthFailed, "login response contained no token", nil)
	}

	c.mu.Lock()
	c.token = login.Result.Token
	c.mu.Unlock()

	c.logger.Debug("authenticated with Paprika API")
	return nil
}

// bearerToken returns the cached token, logging in first if needed.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token != "" {
		return token, nil
	}
	if err := c.Login(ctx); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, nil
}

// get performs an authenticated GET and unwraps the result envelope.
func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.NetworkError("build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkError(fmt.Sprintf("GET %s failed", path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	return decodeEnvelope(resp, path)
}

// decodeEnvelope unwraps {"result": ...} and maps API errors.
func decodeEnvelope(resp *http.Response, path string) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf(errors.ErrCodeAPIRequest,
			"Paprika API returned %d for %s", resp.StatusCode, path)
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse,
			fmt.Errorf("decode response for %s: %w", path, err))
	}
	if env.Error != nil {
		return nil, errors.Newf(errors.ErrCodeAPIRequest,
			"Paprika API error for %s: %s", path, env.Error.Message)
	}

	return env.Result, nil
}

// index fetches the sync index: every recipe UID with its content hash.
func (c *Client) index(ctx context.Context) ([]indexEntry, error) {
	result, err := c.get(ctx, "/sync/recipes/")
	if err != nil {
		return nil, err
	}

	var entries []indexEntry
	if err := json.Unmarshal(result, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse,
			fmt.Errorf("decode sync index: %w", err))
	}
	return entries, nil
}

// fetchRaw fetches one recipe's raw JSON from the API, bypassing caches.
func (c *Client) fetchRaw(ctx context.Context, uid string) (json.RawMessage, error) {
	return c.get(ctx, "/sync/recipe/"+uid+"/")
}

// loadRecipe returns one recipe, preferring the in-memory and directory
// caches when the cached hash matches the index hash.
func (c *Client) loadRecipe(ctx context.Context, entry indexEntry) (cachedRecipe, error) {
	if cr, ok := c.memory.Get(entry.UID); ok && cr.record.Hash == entry.Hash {
		return cr, nil
	}

	raw, ok := c.cache.Get(entry.UID, entry.Hash)
	if !ok {
		fetched, err := c.fetchRaw(ctx, entry.UID)
		if err != nil {
			return cachedRecipe{}, err
		}
		raw = fetched
		if err := c.cache.Put(entry.UID, raw); err != nil {
			// Cache writes are best-effort; the fetch already succeeded.
			c.logger.Warn("recipe cache write failed",
				slog.String("uid", entry.UID), slog.String("error", err.Error()))
		}
	}

	var rec recipe.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return cachedRecipe{}, errors.Wrap(errors.ErrCodeAPIResponse,
			fmt.Errorf("decode recipe %s: %w", entry.UID, err))
	}

	cr := cachedRecipe{record: &rec, raw: raw}
	c.memory.Add(entry.UID, cr)
	return cr, nil
}

// Recipes fetches the full account snapshot: the sync index, then each
// recipe (concurrently, cache-first). Trashed recipes are excluded and the
// result is sorted alphabetically by name.
func (c *Client) Recipes(ctx context.Context) ([]*recipe.Record, error) {
	entries, err := c.index(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*recipe.Record, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, entry := range entries {
		g.Go(func() error {
			cr, err := c.loadRecipe(gctx, entry)
			if err != nil {
				return err
			}
			records[i] = cr.record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*recipe.Record, 0, len(records))
	for _, rec := range records {
		if rec != nil && !rec.InTrash {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	c.logger.Info("fetched recipe snapshot",
		slog.Int("total", len(entries)), slog.Int("active", len(out)))
	return out, nil
}

// Recipe returns a single recipe by UID, bypassing the index.
func (c *Client) Recipe(ctx context.Context, uid string) (*recipe.Record, error) {
	raw, err := c.fetchRaw(ctx, uid)
	if err != nil {
		return nil, err
	}

	var rec recipe.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse,
			fmt.Errorf("decode recipe %s: %w", uid, err))
	}
	if rec.UID == "" {
		return nil, errors.Newf(errors.ErrCodeNotFound, "no recipe found with ID %q", uid)
	}

	c.memory.Add(uid, cachedRecipe{record: &rec, raw: raw})
	return &rec, nil
}

// UpdateField persists a new value for one field of one recipe. The
// recipe is re-fetched fresh so unknown metadata passes through unchanged,
// the field is set on the raw JSON object, the sync hash is bumped, and
// the result is uploaded gzip-compressed. Caches are invalidated on
// success.
func (c *Client) UpdateField(ctx context.Context, uid, field, newValue string) error {
	raw, err := c.fetchRaw(ctx, uid)
	if err != nil {
		return err
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return errors.Wrap(errors.ErrCodeAPIResponse,
			fmt.Errorf("decode recipe %s: %w", uid, err))
	}
	if len(obj) == 0 {
		return errors.Newf(errors.ErrCodeNotFound, "no recipe found with ID %q", uid)
	}

	obj[field] = newValue
	obj["hash"] = newSyncHash()

	if err := c.uploadRecipe(ctx, uid, obj); err != nil {
		return err
	}

	c.memory.Remove(uid)
	c.cache.Remove(uid)

	c.logger.Info("recipe field updated",
		slog.String("uid", uid), slog.String("field", field))
	return nil
}

// uploadRecipe POSTs a recipe as a gzipped JSON multipart upload, the
// format the sync API expects.
func (c *Client) uploadRecipe(ctx context.Context, uid string, obj map[string]any) error {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(obj)
	if err != nil {
		return errors.InternalError("encode recipe", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("data", "data")
	if err != nil {
		return errors.InternalError("build upload form", err)
	}
	gz := gzip.NewWriter(part)
	if _, err := gz.Write(payload); err != nil {
		return errors.InternalError("compress recipe", err)
	}
	if err := gz.Close(); err != nil {
		return errors.InternalError("compress recipe", err)
	}
	if err := mw.Close(); err != nil {
		return errors.InternalError("build upload form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/sync/recipe/"+uid+"/", &body)
	if err != nil {
		return errors.NetworkError("build upload request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("upload request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := decodeEnvelope(resp, "/sync/recipe/"+uid+"/"); err != nil {
		return err
	}
	return nil
}

// newSyncHash generates a fresh content hash for an uploaded recipe, the
// same way the official clients do: a digest of a random UUID.
func newSyncHash() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}
