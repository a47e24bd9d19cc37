package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skinsage/backend/config"
	"github.com/skinsage/backend/internal/domain"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	// Run tests
	exitCode := m.Run()

	// Exit with the test result code
	os.Exit(exitCode)
}

// stubRecommender scripts the usecase surface for handler tests
type stubRecommender struct {
	recommendation *domain.Recommendation
	err            error
	lastRequest    *domain.RecommendRequest
}

func (s *stubRecommender) Recommend(ctx context.Context, request *domain.RecommendRequest) (*domain.Recommendation, error) {
	s.lastRequest = request
	if s.err != nil {
		return nil, s.err
	}
	return s.recommendation, nil
}

// setupTestRouter creates a test router with default configuration
func setupTestRouter(recommender Recommender) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	handler := NewHandler(recommender)
	return SetupRouter(cfg, handler)
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter(&stubRecommender{})

		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		if err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "skinsage-backend" {
			t.Errorf("service = %v, want skinsage-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter(&stubRecommender{})

		methods := []string{"POST", "PUT", "DELETE", "PATCH"}

		for _, method := range methods {
			req, _ := http.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

// TestRecommendEndpoint tests the recommendation endpoint
func TestRecommendEndpoint(t *testing.T) {
	postRecommend := func(router *gin.Engine, payload string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest("POST", "/api/v1/recommend", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("returns ranked results", func(t *testing.T) {
		stub := &stubRecommender{
			recommendation: &domain.Recommendation{
				QueryUsed: "sunscreen site:nykaa.com",
				Intent: domain.Intent{
					Concerns:   []domain.Concern{domain.ConcernAcne},
					Categories: []domain.Category{domain.CategorySunscreen},
				},
				Results: []domain.RankedResult{
					{
						Candidate: domain.Candidate{
							ID:   "p1",
							Name: "Aqualogica Glow+ Sunscreen SPF 50",
							URL:  "https://www.nykaa.com/aqualogica/p/123",
						},
						Score: 43,
						Why:   "Picked for broad-spectrum SPF; matches your concerns.",
					},
				},
			},
		}
		router := setupTestRouter(stub)

		payload := `{"query":"sunscreen for oily skin","profile":{"skinType":"oily","region":"in"}}`
		w := postRecommend(router, payload)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var response domain.Recommendation
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if response.QueryUsed != "sunscreen site:nykaa.com" {
			t.Errorf("query_used = %q, want the variant query", response.QueryUsed)
		}
		if len(response.Results) != 1 {
			t.Fatalf("len(results) = %d, want 1", len(response.Results))
		}
		if response.Results[0].Why == "" {
			t.Error("result has no explanation")
		}

		if stub.lastRequest == nil {
			t.Fatal("recommender never called")
		}
		if stub.lastRequest.Profile.SkinType != domain.SkinOily {
			t.Errorf("bound skin_type = %q, want oily", stub.lastRequest.Profile.SkinType)
		}
	})

	t.Run("empty results is still a 200", func(t *testing.T) {
		stub := &stubRecommender{
			recommendation: &domain.Recommendation{
				QueryUsed: "best moisturizer",
				Results:   []domain.RankedResult{},
			},
		}
		router := setupTestRouter(stub)

		w := postRecommend(router, `{"query":"moisturizer"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response domain.Recommendation
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(response.Results) != 0 {
			t.Errorf("len(results) = %d, want 0", len(response.Results))
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := setupTestRouter(&stubRecommender{})

		w := postRecommend(router, `{"query": }`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects missing query", func(t *testing.T) {
		router := setupTestRouter(&stubRecommender{})

		w := postRecommend(router, `{"profile":{"skinType":"dry"}}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("maps invalid-request errors to 400", func(t *testing.T) {
		stub := &stubRecommender{err: domain.ErrInvalidRequest}
		router := setupTestRouter(stub)

		w := postRecommend(router, `{"query":"   "}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["error"] != "query is required" {
			t.Errorf("error = %v, want 'query is required'", response["error"])
		}
	})

	t.Run("maps unexpected errors to 500", func(t *testing.T) {
		stub := &stubRecommender{err: errors.New("boom")}
		router := setupTestRouter(stub)

		w := postRecommend(router, `{"query":"sunscreen"}`)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		// Internal detail never leaks to the client
		if response["error"] != "recommendation failed" {
			t.Errorf("error = %v, want 'recommendation failed'", response["error"])
		}
	})

	t.Run("validates HTTP method", func(t *testing.T) {
		router := setupTestRouter(&stubRecommender{})

		methods := []string{"GET", "PUT", "DELETE", "PATCH"}

		for _, method := range methods {
			req, _ := http.NewRequest(method, "/api/v1/recommend", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}
