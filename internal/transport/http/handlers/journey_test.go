package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"worklog/internal/app/server"
	"worklog/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		Environment:       "test",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
		SeedAdminName:     "Test Admin",
		RunMigrations:     true,
		RunSeed:           true,
		MaxBodyBytes:      1048576,
		ExportTitle:       "Work Report",
	}
}

func TestReportingJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeePassword := "Stronger123"
	employeeID := createEmployee(t, client, ts.URL, adminToken, employeeEmail, employeePassword)

	employeeToken := login(t, client, ts.URL, employeeEmail, employeePassword)

	reportID := submitReport(t, client, ts.URL, employeeToken, map[string]any{
		"reportDate":       "2026-03-02",
		"bookTitle":        "Atlas of Clouds",
		"printingPages":    5,
		"typesettingPages": 3,
		"editingPages":     0,
	})

	// Resubmitting the same day must update in place, not create a second row.
	secondID := submitReport(t, client, ts.URL, employeeToken, map[string]any{
		"reportDate":    "2026-03-02",
		"bookTitle":     "Atlas of Clouds",
		"printingPages": 7,
	})
	if secondID != reportID {
		t.Fatalf("expected upsert to keep report id %s, got %s", reportID, secondID)
	}

	day := getJSON(t, client, ts.URL+"/api/v1/reports/day?date=2026-03-02", employeeToken)
	var fetched map[string]any
	if err := json.Unmarshal(day.Data, &fetched); err != nil {
		t.Fatalf("failed to decode day response: %v", err)
	}
	if fetched["printingPages"].(float64) != 7 {
		t.Fatalf("expected resubmitted pages, got %v", fetched["printingPages"])
	}

	edited := putJSON(t, client, ts.URL+"/api/v1/reports/"+reportID, adminToken, map[string]any{
		"printingPages": 9,
	})
	var after map[string]any
	if err := json.Unmarshal(edited.Data, &after); err != nil {
		t.Fatalf("failed to decode edit response: %v", err)
	}
	if after["printingPages"].(float64) != 9 {
		t.Fatalf("expected edited pages, got %v", after["printingPages"])
	}
	if after["bookTitle"].(string) != "Atlas of Clouds" {
		t.Fatalf("expected untouched fields preserved, got %v", after["bookTitle"])
	}

	summaries := getJSON(t, client, ts.URL+"/api/v1/summaries?startDate=2026-03-01&endDate=2026-03-07", adminToken)
	var summaryPayload struct {
		Summaries []map[string]any `json:"summaries"`
	}
	if err := json.Unmarshal(summaries.Data, &summaryPayload); err != nil {
		t.Fatalf("failed to decode summaries: %v", err)
	}
	found := false
	for _, row := range summaryPayload.Summaries {
		if row["employeeId"] == employeeID {
			found = true
			if row["totalPrintingPages"].(float64) != 9 {
				t.Fatalf("expected edited pages in summary, got %v", row["totalPrintingPages"])
			}
		}
	}
	if !found {
		t.Fatal("expected the new employee in the summaries")
	}

	checkExport(t, client, ts.URL+"/api/v1/exports/excel?startDate=2026-03-01&endDate=2026-03-07", adminToken,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []byte{'P', 'K'})
	checkExport(t, client, ts.URL+"/api/v1/exports/pdf?startDate=2026-03-01&endDate=2026-03-07", adminToken,
		"application/pdf", []byte("%PDF"))

	auditEvents := getJSON(t, client, ts.URL+"/api/v1/audit?action=ADMIN_EDIT", adminToken)
	var auditPayload struct {
		Events []map[string]any `json:"events"`
		Total  int              `json:"total"`
	}
	if err := json.Unmarshal(auditEvents.Data, &auditPayload); err != nil {
		t.Fatalf("failed to decode audit response: %v", err)
	}
	if auditPayload.Total == 0 {
		t.Fatal("expected an ADMIN_EDIT audit event after the edit")
	}
}

func TestEmployeeCannotReachAdminEndpoints(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("rbac-%d@example.com", time.Now().UnixNano())
	createEmployee(t, client, ts.URL, adminToken, employeeEmail, "Stronger123")
	employeeToken := login(t, client, ts.URL, employeeEmail, "Stronger123")

	adminOnly := []string{
		"/api/v1/employees",
		"/api/v1/reports/",
		"/api/v1/summaries?startDate=2026-03-01&endDate=2026-03-07",
		"/api/v1/exports/excel?startDate=2026-03-01&endDate=2026-03-07",
		"/api/v1/audit",
	}
	for _, path := range adminOnly {
		status := getStatus(t, client, ts.URL+path, employeeToken)
		if status != http.StatusForbidden {
			t.Fatalf("expected 403 for %s as employee, got %d", path, status)
		}
		if status := getStatus(t, client, ts.URL+path, ""); status != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s anonymously, got %d", path, status)
		}
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"email":    email,
		"password": password,
		"fullName": "Journey Tester",
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected employee id")
	}
	return id
}

func submitReport(t *testing.T, client *http.Client, baseURL, token string, body map[string]any) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/reports/", token, body)
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode report response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected report id")
	}
	return id
}

func checkExport(t *testing.T, client *http.Client, url, token, wantType string, wantPrefix []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != wantType {
		t.Fatalf("expected content type %q, got %q", wantType, got)
	}
	if !strings.Contains(resp.Header.Get("Content-Disposition"), "attachment") {
		t.Fatalf("expected attachment disposition, got %q", resp.Header.Get("Content-Disposition"))
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read export body: %v", err)
	}
	if !bytes.HasPrefix(raw, wantPrefix) {
		t.Fatalf("unexpected export prefix %q", raw[:min(len(raw), 8)])
	}
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body)
}

func putJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPut, url, token, body)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func getStatus(t *testing.T, client *http.Client, url, token string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}
