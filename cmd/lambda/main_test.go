package main

import (
	"context"
	"encoding/json"
	"testing"

	"lsmc/cmd"
	"lsmc/internal/config"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	deps, err := cmd.InitializeDependencies(config.Default())
	require.NoError(t, err)
	handler := newLambdaHandler(deps.ApiHandler)

	body, err := json.Marshal(map[string]any{
		"paths":      cmd.ClassicPaths(),
		"optionType": "put",
		"strike":     1.1,
		"tenor":      3,
		"rate":       0.06,
	})
	require.NoError(t, err)

	resp, err := handler.Handler(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/price",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode, resp.Body)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	require.Equal(t, "0.114434", out["price"])
}
