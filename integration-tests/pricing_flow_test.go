package integration_tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lsmc/cmd"
	"lsmc/internal/config"
	"lsmc/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func seedPaths() (domain.Matrix, error) {
	f, err := os.Open("classic_paths.csv")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type Row struct {
		Path  int     `csv:"path"`
		Step  int     `csv:"step"`
		Price float64 `csv:"price"`
	}
	rows := []Row{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, err
	}

	paths := domain.NewMatrix(8, 4)
	for _, row := range rows {
		paths[row.Path][row.Step] = row.Price
	}
	return paths, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	cfg := config.Default()
	cfg.Pricing.Rate = 0.06
	deps, err := cmd.InitializeDependencies(cfg)
	require.NoError(t, err)

	server := httptest.NewServer(deps.ApiHandler.InitializeRouterEngine())
	t.Cleanup(server.Close)
	return server
}

func hitEndpoint(server *httptest.Server, route string, method string, payload interface{}, target interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, server.URL+"/"+route, bytes.NewReader(payloadBytes))
	if err != nil {
		return err
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	type ErrorResponse struct {
		Error string `json:"error"`
	}
	errResponse := ErrorResponse{}
	if err := json.Unmarshal(responseBody, &errResponse); err != nil {
		return err
	}
	if errResponse.Error != "" {
		return fmt.Errorf("failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	return json.Unmarshal(responseBody, target)
}

type priceResponse struct {
	Price            string        `json:"price"`
	Dt               float64       `json:"dt"`
	NumExercised     int           `json:"numExercised"`
	Cashflows        domain.Matrix `json:"cashflows"`
	NegativeExposure domain.Matrix `json:"negativeExposure"`
	ExerciseStep     []int         `json:"exerciseStep"`
	Exposure         struct {
		Steps []struct {
			EPE float64 `json:"epe"`
		} `json:"steps"`
	} `json:"exposure"`
}

func Test_classicPricingFlow(t *testing.T) {
	paths, err := seedPaths()
	require.NoError(t, err)
	server := newTestServer(t)

	response := priceResponse{}
	err = hitEndpoint(server, "price", http.MethodPost, map[string]any{
		"paths":           paths,
		"optionType":      "put",
		"strike":          1.10,
		"tenor":           3,
		"includeMatrices": true,
	}, &response)
	require.NoError(t, err)

	require.Equal(t, "0.114434", response.Price)
	require.Equal(t, 1.0, response.Dt)
	require.Equal(t, 5, response.NumExercised)
	require.Equal(t, []int{-1, -1, 3, 1, -1, 1, 1, 1}, response.ExerciseStep)

	expectedCashflows := domain.Matrix{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0.07},
		{0, 0.17, 0, 0},
		{0, 0, 0, 0},
		{0, 0.34, 0, 0},
		{0, 0.18, 0, 0},
		{0, 0.22, 0, 0},
	}
	diff := cmp.Diff(expectedCashflows, response.Cashflows, cmp.Comparer(func(a, b float64) bool {
		return a-b < 1e-9 && b-a < 1e-9
	}))
	require.Empty(t, diff)
	require.Equal(t, domain.NewMatrix(8, 4), response.NegativeExposure)
	require.Len(t, response.Exposure.Steps, 4)
	require.Zero(t, response.Exposure.Steps[0].EPE)

	t.Run("too few in the money paths", func(t *testing.T) {
		err := hitEndpoint(server, "price", http.MethodPost, map[string]any{
			"paths":      paths,
			"optionType": "call",
			"strike":     1.2,
			"tenor":      3,
		}, &priceResponse{})
		require.ErrorContains(t, err, "status 422")
	})
}

func Test_simulateThenPriceFlow(t *testing.T) {
	server := newTestServer(t)

	simulated := struct {
		Paths domain.Matrix `json:"paths"`
	}{}
	err := hitEndpoint(server, "simulate", http.MethodPost, map[string]any{
		"spot":       40,
		"rate":       0.06,
		"volatility": 0.2,
		"tenor":      1,
		"steps":      25,
		"numPaths":   2000,
		"seed":       5,
	}, &simulated)
	require.NoError(t, err)

	fromPaths := priceResponse{}
	err = hitEndpoint(server, "price", http.MethodPost, map[string]any{
		"paths":           simulated.Paths,
		"optionType":      "put",
		"strike":          40,
		"tenor":           1,
		"sparseFitPolicy": "zero",
	}, &fromPaths)
	require.NoError(t, err)

	fromSimulation := priceResponse{}
	err = hitEndpoint(server, "price", http.MethodPost, map[string]any{
		"optionType":      "put",
		"strike":          40,
		"tenor":           1,
		"sparseFitPolicy": "zero",
		"simulation": map[string]any{
			"spot":       40,
			"volatility": 0.2,
			"steps":      25,
			"numPaths":   2000,
			"seed":       5,
		},
	}, &fromSimulation)
	require.NoError(t, err)

	require.Equal(t, fromPaths.Price, fromSimulation.Price)
}
