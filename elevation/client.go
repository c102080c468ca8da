package elevation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
)

const (
	fetchAttempts  = 3
	fetchBackoff   = 500 * time.Millisecond
	cacheTTL       = 24 * time.Hour
	requestTimeout = 15 * time.Second
)

// Client fetches elevation grids from an open-elevation style batch
// lookup endpoint. An optional redis client caches whole grids keyed by
// their bounds; pass nil to disable caching.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
}

func NewClient(baseURL string, cache *redis.Client) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		cache:   cache,
	}
}

type lookupRequest struct {
	Locations []lookupLocation `json:"locations"`
}

type lookupLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// FetchGrid samples a rows x cols lattice over bounds. On persistent
// fetch failure it returns an all-zero grid rather than an error, so a
// missing elevation service degrades to flat terrain.
func (c *Client) FetchGrid(ctx context.Context, bounds geometry.BoundingBox, rows, cols int) *Grid {
	if grid := c.cacheGet(ctx, bounds, rows, cols); grid != nil {
		return grid
	}

	req := lookupRequest{Locations: make([]lookupLocation, 0, rows*cols)}
	for r := 0; r < rows; r++ {
		lat := bounds.MaxLat - (bounds.MaxLat-bounds.MinLat)*float64(r)/float64(rows-1)
		for col := 0; col < cols; col++ {
			lng := bounds.MinLng + (bounds.MaxLng-bounds.MinLng)*float64(col)/float64(cols-1)
			req.Locations = append(req.Locations, lookupLocation{Latitude: lat, Longitude: lng})
		}
	}

	resp, err := c.lookup(ctx, req)
	if err != nil {
		log.Printf("Elevation fetch failed, falling back to flat terrain: %v", err)
		return NewFlatGrid(bounds, rows, cols)
	}
	if len(resp.Results) != rows*cols {
		log.Printf("Elevation service returned %d samples, want %d; falling back to flat terrain", len(resp.Results), rows*cols)
		return NewFlatGrid(bounds, rows, cols)
	}

	heights := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		heights[r] = make([]float64, cols)
		for col := 0; col < cols; col++ {
			heights[r][col] = resp.Results[r*cols+col].Elevation
		}
	}

	grid := NewGrid(bounds, heights)
	c.cacheSet(ctx, grid)
	return grid
}

func (c *Client) lookup(ctx context.Context, req lookupRequest) (*lookupResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(fetchBackoff << uint(attempt-1)):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/lookup", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		httpResp, err := c.http.Do(httpReq)
		if err != nil {
			lastErr = err
			continue
		}

		if httpResp.StatusCode != http.StatusOK {
			httpResp.Body.Close()
			lastErr = fmt.Errorf("elevation service returned status %d", httpResp.StatusCode)
			continue
		}

		var parsed lookupResponse
		err = json.NewDecoder(httpResp.Body).Decode(&parsed)
		httpResp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to parse elevation response: %w", err)
			continue
		}
		return &parsed, nil
	}

	return nil, lastErr
}

func cacheKey(bounds geometry.BoundingBox, rows, cols int) string {
	return fmt.Sprintf("elev:%.5f:%.5f:%.5f:%.5f:%dx%d",
		bounds.MinLat, bounds.MinLng, bounds.MaxLat, bounds.MaxLng, rows, cols)
}

func (c *Client) cacheGet(ctx context.Context, bounds geometry.BoundingBox, rows, cols int) *Grid {
	if c.cache == nil {
		return nil
	}
	data, err := c.cache.Get(ctx, cacheKey(bounds, rows, cols)).Bytes()
	if err != nil {
		return nil
	}
	var grid Grid
	if err := json.Unmarshal(data, &grid); err != nil {
		return nil
	}
	return &grid
}

func (c *Client) cacheSet(ctx context.Context, grid *Grid) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(grid)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(grid.Bounds, grid.Rows, grid.Cols), data, cacheTTL).Err(); err != nil {
		log.Printf("Failed to cache elevation grid: %v", err)
	}
}
