package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/movementor/backend/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func doRegister(ctx context.Context, t *testing.T, email, password string) uuid.UUID {
	registerReqJson, err := json.Marshal(users.RegisterRequest{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users/register", serverEndpoint), bytes.NewBuffer(registerReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var registerResp users.RegisterResponse
	require.NoError(t, json.Unmarshal(respBytes, &registerResp))
	require.NotEqual(t, uuid.Nil, registerResp.UserID)

	return registerResp.UserID
}

func doLogin(ctx context.Context, t *testing.T, email, password string) string {
	loginReqJson, err := json.Marshal(users.LoginRequest{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var loginResp users.LoginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token
}
