package tmap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schedule-microservice/internal/config"
	"github.com/schedule-microservice/internal/domain"
)

func TestClient_GetRoutePrediction(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		var gotBody routeRequestBody
		var gotAppKey string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAppKey = r.Header.Get("appKey")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"features": [
					{
						"type": "Feature",
						"geometry": {"type": "Point", "coordinates": [127.1, 37.5]},
						"properties": {"totalTime": 7200, "pointType": "S"}
					},
					{
						"type": "Feature",
						"geometry": {"type": "LineString", "coordinates": [[127.1, 37.5], [127.2, 37.6]]},
						"properties": {"time": 3600}
					}
				]
			}`))
		}))
		defer server.Close()

		cfg := &config.TmapConfig{
			BaseURL:        server.URL,
			AppKey:         "test_key",
			RequestTimeout: 30,
		}

		client := NewTmapClient(cfg, logger)

		resp, err := client.GetRoutePrediction(context.Background(), domain.RouteRequest{
			Departure:     domain.RouteEndpoint{Name: "home", Lat: 37.5, Lon: 127.1},
			Destination:   domain.RouteEndpoint{Name: "beach", Lat: 37.6, Lon: 127.2},
			Waypoints:     []domain.RouteEndpoint{{Lat: 37.55, Lon: 127.15}},
			DepartureTime: "2024-01-01T09:00:00+0900",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "test_key", gotAppKey)
		assert.Equal(t, "home", gotBody.RoutesInfo.Departure.Name)
		assert.Equal(t, "127.1", gotBody.RoutesInfo.Departure.Lon)
		assert.Equal(t, "37.5", gotBody.RoutesInfo.Departure.Lat)
		assert.Equal(t, "departure", gotBody.RoutesInfo.PredictionType)
		assert.Equal(t, "2024-01-01T09:00:00+0900", gotBody.RoutesInfo.PredictionTime)
		require.NotNil(t, gotBody.RoutesInfo.WayPoints)
		assert.Len(t, gotBody.RoutesInfo.WayPoints.WayPoint, 1)

		require.Len(t, resp.Features, 2)
		require.NotNil(t, resp.Features[0].Properties.TotalTime)
		assert.Equal(t, int64(7200), *resp.Features[0].Properties.TotalTime)
		assert.Equal(t, "S", resp.Features[0].Properties.PointType)
		require.NotNil(t, resp.Features[1].Properties.Time)
		assert.Equal(t, int64(3600), *resp.Features[1].Properties.Time)
	})

	t.Run("no waypoints omits container", func(t *testing.T) {
		var rawBody map[string]map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
			_, _ = w.Write([]byte(`{"features": []}`))
		}))
		defer server.Close()

		client := NewTmapClient(&config.TmapConfig{BaseURL: server.URL, RequestTimeout: 30}, logger)

		_, err := client.GetRoutePrediction(context.Background(), domain.RouteRequest{
			Departure:   domain.RouteEndpoint{Lat: 1, Lon: 1},
			Destination: domain.RouteEndpoint{Lat: 2, Lon: 2},
		})
		require.NoError(t, err)

		_, hasWaypoints := rawBody["routesInfo"]["wayPoints"]
		assert.False(t, hasWaypoints)
	})

	t.Run("provider error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "bad appKey"}`))
		}))
		defer server.Close()

		client := NewTmapClient(&config.TmapConfig{BaseURL: server.URL, RequestTimeout: 30}, logger)

		resp, err := client.GetRoutePrediction(context.Background(), domain.RouteRequest{
			Departure:   domain.RouteEndpoint{Lat: 1, Lon: 1},
			Destination: domain.RouteEndpoint{Lat: 2, Lon: 2},
		})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "status 400")
	})
}
