package osm

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bicyclespokesperson/MapsTD-sub000/geometry"
	"github.com/bicyclespokesperson/MapsTD-sub000/models"
)

const (
	fetchAttempts  = 3
	fetchBackoff   = time.Second
	requestTimeout = 30 * time.Second
)

// routableClasses are the highway values worth routing over. Footways,
// cycleways and the like are left out; enemies drive.
var routableClasses = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "service",
	"motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link",
}

// Client fetches road data from an Overpass API endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// FetchRoads queries every routable way inside the bounding box and
// parses the response into road segments. Unlike elevation, road data
// has no useful fallback: without streets there is no game, so failure
// is an error.
func (c *Client) FetchRoads(ctx context.Context, bounds geometry.BoundingBox) ([]models.RoadSegment, error) {
	query := fmt.Sprintf(
		`[out:json][timeout:25];way["highway"~"^(%s)$"](%f,%f,%f,%f);out body;>;out skel qt;`,
		strings.Join(routableClasses, "|"),
		bounds.MinLat, bounds.MinLng, bounds.MaxLat, bounds.MaxLng,
	)

	body, err := c.post(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	segments, err := ParseOverpassResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overpass response: %w", err)
	}

	log.Printf("Fetched %d road segments from Overpass", len(segments))
	return segments, nil
}

func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{}
	form.Set("data", query)

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(fetchBackoff << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/interpreter", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("overpass returned status %d", resp.StatusCode)
			continue
		}
		return body, nil
	}

	return nil, lastErr
}
