package tmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/schedule-microservice/internal/config"
	"github.com/schedule-microservice/internal/domain"
	"github.com/schedule-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const routePredictionPath = "/tmap/routes/prediction?version=1"

type client struct {
	httpClient *http.Client
	baseURL    string
	appKey     string
	logger     *zap.Logger
}

// NewTmapClient creates a client for the Tmap route prediction API.
func NewTmapClient(cfg *config.TmapConfig, logger *zap.Logger) repository.RouteProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		appKey:  cfg.AppKey,
		logger:  logger,
	}
}

// request body shapes; coordinates go over the wire as strings.
type routesInfo struct {
	Departure      endpoint   `json:"departure"`
	Destination    endpoint   `json:"destination"`
	WayPoints      *waypoints `json:"wayPoints,omitempty"`
	PredictionType string     `json:"predictionType"`
	PredictionTime string     `json:"predictionTime"`
	SearchOption   string     `json:"searchOption"`
}

type waypoints struct {
	WayPoint []endpoint `json:"wayPoint"`
}

type endpoint struct {
	Name string `json:"name,omitempty"`
	Lon  string `json:"lon"`
	Lat  string `json:"lat"`
}

type routeRequestBody struct {
	RoutesInfo routesInfo `json:"routesInfo"`
}

// GetRoutePrediction requests a timed route for the given endpoints.
func (c *client) GetRoutePrediction(ctx context.Context, req domain.RouteRequest) (*domain.RouteResponse, error) {
	body := buildRequestBody(req)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal route request: %w", err)
	}

	c.logger.Debug("Calling Tmap route prediction API",
		zap.String("departure", req.Departure.Name),
		zap.String("destination", req.Destination.Name),
		zap.Int("waypoints", len(req.Waypoints)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+routePredictionPath, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("appKey", c.appKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Tmap API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("tmap API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var routeResp domain.RouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Tmap route prediction successful",
		zap.Int("features", len(routeResp.Features)))

	return &routeResp, nil
}

func buildRequestBody(req domain.RouteRequest) routeRequestBody {
	info := routesInfo{
		Departure:      toEndpoint(req.Departure),
		Destination:    toEndpoint(req.Destination),
		PredictionType: "departure",
		PredictionTime: req.DepartureTime,
		SearchOption:   "00",
	}

	if len(req.Waypoints) > 0 {
		points := make([]endpoint, len(req.Waypoints))
		for i, wp := range req.Waypoints {
			points[i] = toEndpoint(wp)
		}
		info.WayPoints = &waypoints{WayPoint: points}
	}

	return routeRequestBody{RoutesInfo: info}
}

func toEndpoint(e domain.RouteEndpoint) endpoint {
	return endpoint{
		Name: e.Name,
		Lon:  strconv.FormatFloat(e.Lon, 'f', -1, 64),
		Lat:  strconv.FormatFloat(e.Lat, 'f', -1, 64),
	}
}
