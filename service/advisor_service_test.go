package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asset-forecast/domain"
)

var samplePrediction = domain.BudgetPrediction{
	NextQuarter: 540750,
	NextYear:    1730400,
	Factors:     []string{"High project volume (24 active projects)", "Seasonal demand variation"},
}

func TestExplainBudget_FallbackWithoutKey(t *testing.T) {
	advisor := NewAdvisorService(AdvisorOptions{Provider: ProviderOpenAI})

	if advisor.Enabled() {
		t.Fatalf("advisor without API key should be disabled")
	}

	text := advisor.ExplainBudget(context.Background(), samplePrediction)
	if !strings.Contains(text, "$540750") || !strings.Contains(text, "$1730400") {
		t.Errorf("fallback should quote both projections, got %q", text)
	}
	if !strings.Contains(text, "high project volume") {
		t.Errorf("fallback should name the main driver, got %q", text)
	}
}

func TestExplainBudget_OpenAICompatibleEndpoint(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Plan for a busy summer.  "}}]}`))
	}))
	defer server.Close()

	advisor := NewAdvisorService(AdvisorOptions{Provider: ProviderOpenAI, APIKey: "test-key", APIURL: server.URL})

	text := advisor.ExplainBudget(context.Background(), samplePrediction)

	if text != "Plan for a busy summer." {
		t.Errorf("unexpected explanation %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != defaultOpenAIModel || len(gotReq.Messages) != 2 {
		t.Errorf("unexpected request %+v", gotReq)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "High project volume") {
		t.Errorf("prompt should list the drivers")
	}
}

func TestExplainBudget_ProviderErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	advisor := NewAdvisorService(AdvisorOptions{APIKey: "test-key", APIURL: server.URL})

	text := advisor.ExplainBudget(context.Background(), samplePrediction)
	if text != fallbackBudgetExplanation(samplePrediction) {
		t.Errorf("expected fallback explanation, got %q", text)
	}
}

func TestNewAdvisorService_UnknownProviderDisabled(t *testing.T) {
	advisor := NewAdvisorService(AdvisorOptions{Provider: "mystery", APIKey: "k"})
	if advisor.Enabled() {
		t.Errorf("unknown provider should disable the advisor")
	}
}
