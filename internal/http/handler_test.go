package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handyzentrum/shopdocs/internal/auth"
	"github.com/handyzentrum/shopdocs/internal/config"
	"github.com/handyzentrum/shopdocs/internal/db"
	"github.com/handyzentrum/shopdocs/internal/excel"
	"github.com/handyzentrum/shopdocs/internal/export"
	"github.com/handyzentrum/shopdocs/internal/http/middleware"
	"github.com/handyzentrum/shopdocs/internal/ledger"
	"github.com/handyzentrum/shopdocs/internal/model"
	"github.com/handyzentrum/shopdocs/internal/numbering"
	"github.com/handyzentrum/shopdocs/internal/pdf"
	"github.com/handyzentrum/shopdocs/internal/repository"
	"github.com/handyzentrum/shopdocs/internal/service"
)

func newTestRouter(t *testing.T, secret string) http.Handler {
	t.Helper()
	base := t.TempDir()

	cfg := &config.Config{}
	cfg.DB.Path = filepath.Join(base, "contracts.db")
	database, err := db.New(cfg, zerolog.Nop())
	require.NoError(t, err)

	company := model.Company{
		Name: "Myers International GmbH", Street: "Karl-Marx-Str. 62",
		PostalCity: "12043 Berlin", City: "Berlin",
		Phone: "123456789", Email: "shop@example.com",
	}

	clock := func() time.Time { return time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC) }

	repo := repository.NewContractRepository(database)
	allocator := numbering.New(filepath.Join(base, "counter.json"))
	renderer := pdf.NewGenerator(company).WithClock(clock)
	exporter := export.NewExporter(repo, excel.NewGenerator()).WithClock(clock)

	contracts := service.NewContractService(
		allocator, renderer,
		ledger.NewCSVLedger(filepath.Join(base, "contracts.csv")),
		repo, exporter, filepath.Join(base, "contracts"), zerolog.Nop(),
	).WithClock(clock)
	receipts := service.NewReceiptService(allocator, renderer, base, zerolog.Nop()).WithClock(clock)

	var parser *auth.Parser
	if secret != "" {
		parser = auth.NewParser(secret)
	}

	handler := NewHandler(contracts, receipts, company, zerolog.Nop())
	return NewRouter(handler, middleware.Auth(parser), "test")
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func contractPayload() service.CreateContractInput {
	return service.CreateContractInput{
		Seller: service.PartyInput{FirstName: "Myers", LastName: "International"},
		Buyer:  service.PartyInput{FirstName: "Anna", LastName: "Mueller"},
		Device: service.DeviceInput{Manufacturer: "Apple", Model: "iPhone 12"},
		Price:  "250.00",
	}
}

func TestCreateContractEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	resp := doJSON(t, router, http.MethodPost, "/contracts", contractPayload(), nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var result service.CreateContractResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "Anna_20240110_001", result.Code)
	assert.NotZero(t, result.RecordID)
}

func TestCreateContractEndpointValidation(t *testing.T) {
	router := newTestRouter(t, "")

	payload := contractPayload()
	payload.Price = "-3"

	resp := doJSON(t, router, http.MethodPost, "/contracts", payload, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "price")
}

func TestContractRegisterRoundTrip(t *testing.T) {
	router := newTestRouter(t, "")

	created := doJSON(t, router, http.MethodPost, "/contracts", contractPayload(), nil)
	require.Equal(t, http.StatusCreated, created.Code)

	list := doJSON(t, router, http.MethodGet, "/contracts", nil, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var records []model.ContractRecord
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &records))
	require.Len(t, records, 1)

	missing := doJSON(t, router, http.MethodGet, "/contracts/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)

	deleted := doJSON(t, router, http.MethodDelete, "/contracts/1", nil, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

func TestCreateReceiptEndpointRejectsEmptyItems(t *testing.T) {
	router := newTestRouter(t, "")

	resp := doJSON(t, router, http.MethodPost, "/receipts", service.CreateReceiptInput{
		CustomerName: "Anna Mueller",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "item")
}

func TestCreateReceiptEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	resp := doJSON(t, router, http.MethodPost, "/receipts", service.CreateReceiptInput{
		CustomerName: "Anna Mueller",
		Items: []service.LineItemInput{
			{Description: "Case", Quantity: 1, UnitPrice: "10.00"},
			{Description: "Cable", Quantity: 2, UnitPrice: "5.00", TaxIncluded: true},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var result service.CreateReceiptResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, "21.90", result.GrandTotal)
	assert.Regexp(t, `^RG20240110-\d{3}$`, result.Number)
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	created := doJSON(t, router, http.MethodPost, "/contracts", contractPayload(), nil)
	require.Equal(t, http.StatusCreated, created.Code)

	resp := doJSON(t, router, http.MethodGet, "/contracts/export?format=csv", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "contracts-20240110.csv")
	assert.Contains(t, resp.Body.String(), "Anna_20240110_001")
}

func TestCompanyPrefillEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	resp := doJSON(t, router, http.MethodGet, "/company", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Myers International GmbH")
}

func TestAuthRequiredWhenSecretConfigured(t *testing.T) {
	const secret = "test-secret"
	router := newTestRouter(t, secret)

	unauthenticated := doJSON(t, router, http.MethodGet, "/contracts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, unauthenticated.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "operator",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	authenticated := doJSON(t, router, http.MethodGet, "/contracts", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	assert.Equal(t, http.StatusOK, authenticated.Code)

	// Health stays open for probes.
	health := doJSON(t, router, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, health.Code)
}
