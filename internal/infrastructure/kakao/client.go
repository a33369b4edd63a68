package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/schedule-microservice/internal/config"
	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	categorySearchPath = "/v2/local/search/category.json"

	// restaurantCategory is Kakao's category group code for restaurants.
	restaurantCategory = "FD6"

	defaultPageSize = 15
)

type client struct {
	httpClient *http.Client
	baseURL    string
	restKey    string
	logger     *zap.Logger
}

// NewKakaoClient creates a client for the Kakao local search API.
func NewKakaoClient(cfg *config.KakaoConfig, logger *zap.Logger) repository.PlaceProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		restKey: cfg.RESTKey,
		logger:  logger,
	}
}

type searchResponse struct {
	Documents []document `json:"documents"`
}

type document struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	CategoryName    string `json:"category_name"`
	Phone           string `json:"phone"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	Longitude       string `json:"x"`
	Latitude        string `json:"y"`
	PlaceURL        string `json:"place_url"`
	Distance        string `json:"distance"`
}

// SearchRestaurants returns restaurants around a coordinate, nearest first.
func (c *client) SearchRestaurants(ctx context.Context, lat, lon float64, radius int) ([]domain.Restaurant, error) {
	query := url.Values{}
	query.Set("category_group_code", restaurantCategory)
	query.Set("x", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("radius", strconv.Itoa(radius))
	query.Set("sort", "distance")
	query.Set("size", strconv.Itoa(defaultPageSize))

	reqURL := c.baseURL + categorySearchPath + "?" + query.Encode()

	c.logger.Debug("Calling Kakao category search API",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Int("radius", radius))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Kakao API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("kakao API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	restaurants := make([]domain.Restaurant, 0, len(searchResp.Documents))
	for _, doc := range searchResp.Documents {
		restaurants = append(restaurants, toRestaurant(doc))
	}

	c.logger.Debug("Kakao category search successful",
		zap.Int("results", len(restaurants)))

	return restaurants, nil
}

func toRestaurant(doc document) domain.Restaurant {
	r := domain.Restaurant{
		RestaurantID: doc.ID,
		Name:         doc.PlaceName,
		Category:     doc.CategoryName,
		Address:      doc.RoadAddressName,
		Phone:        doc.Phone,
		DetailURL:    doc.PlaceURL,
	}
	if r.Address == "" {
		r.Address = doc.AddressName
	}

	// Kakao sends coordinates and distance as strings.
	if lat, err := strconv.ParseFloat(doc.Latitude, 64); err == nil {
		r.Lat = lat
	}
	if lon, err := strconv.ParseFloat(doc.Longitude, 64); err == nil {
		r.Lon = lon
	}
	if dist, err := strconv.Atoi(doc.Distance); err == nil {
		r.Distance = dist
	}

	return r
}
