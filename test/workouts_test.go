package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/movementor/backend/internal/middleware"
	"github.com/movementor/backend/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doWorkout(ctx context.Context, t *testing.T, token, workoutType string) workouts.IncrementResponse {
	reqJson, err := json.Marshal(workouts.WorkoutRequest{Type: workoutType})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts/increment", serverEndpoint), bytes.NewBuffer(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var incrementResp workouts.IncrementResponse
	require.NoError(t, json.Unmarshal(respBytes, &incrementResp))
	require.NotNil(t, incrementResp.Progress)

	return incrementResp
}

func (s *IntegrationTestSuite) TestWorkoutsFlow() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	doRegister(ctx, t, "athlete@movementor.app", "str0ngPass")
	token := doLogin(ctx, t, "athlete@movementor.app", "str0ngPass")

	first := doWorkout(ctx, t, token, "yoga")
	assert.Equal(t, 1, first.Progress.TotalCompleted)
	assert.Equal(t, 1, first.Progress.StreakCount)
	assert.Contains(t, first.Badges, "badge_1")

	second := doWorkout(ctx, t, token, "arms")
	assert.Equal(t, 2, second.Progress.TotalCompleted)
	assert.Equal(t, 1, second.Progress.StreakCount)
	assert.Equal(t, 1, second.Progress.Counts["upper_body"])
	assert.Equal(t, 1, second.Progress.Counts["flexibility"])

	// undo the arms workout
	decrementReqJson, err := json.Marshal(workouts.WorkoutRequest{Type: "arms"})
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts/decrement", serverEndpoint), bytes.NewBuffer(decrementReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decrementResp workouts.DecrementResponse
	require.NoError(t, json.Unmarshal(respBytes, &decrementResp))
	require.NotNil(t, decrementResp.Progress)
	assert.Equal(t, 1, decrementResp.Progress.TotalCompleted)
	assert.Equal(t, 0, decrementResp.Progress.Counts["upper_body"])

	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/progress", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	var progressResp workouts.ProgressInfo
	require.NoError(t, json.Unmarshal(respBytes, &progressResp))
	assert.Equal(t, 1, progressResp.TotalCompleted)
	assert.Equal(t, 1, progressResp.StreakCount)
	assert.Equal(t, 1, progressResp.RawCounts["flexibility"])
	assert.Len(t, progressResp.DailyStats, 1)
}

// Increments for the same user must serialize, including the very first
// ones racing to create the progress row. Every acknowledged increment has
// to survive into the persisted total.
func (s *IntegrationTestSuite) TestWorkoutsConcurrentIncrements() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	doRegister(ctx, t, "sprinter@movementor.app", "str0ngPass")
	token := doLogin(ctx, t, "sprinter@movementor.app", "str0ngPass")

	const increments = 8
	statusCodes := make(chan int, increments)
	var wg sync.WaitGroup
	for i := 0; i < increments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			reqJson, err := json.Marshal(workouts.WorkoutRequest{Type: "cardio"})
			if err != nil {
				statusCodes <- -1
				return
			}
			req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts/increment", serverEndpoint), bytes.NewBuffer(reqJson))
			if err != nil {
				statusCodes <- -1
				return
			}
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(middleware.AuthTokenHeader, token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				statusCodes <- -1
				return
			}
			defer resp.Body.Close()
			_, _ = io.Copy(io.Discard, resp.Body)
			statusCodes <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statusCodes)

	for statusCode := range statusCodes {
		require.Equal(t, http.StatusOK, statusCode)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/progress", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var progressResp workouts.ProgressInfo
	require.NoError(t, json.Unmarshal(respBytes, &progressResp))
	assert.Equal(t, increments, progressResp.TotalCompleted)
	assert.Equal(t, increments, progressResp.RawCounts["cardio"])
}

func (s *IntegrationTestSuite) TestWorkoutsBadges() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	doRegister(ctx, t, "collector@movementor.app", "str0ngPass")
	token := doLogin(ctx, t, "collector@movementor.app", "str0ngPass")

	var lastResp workouts.IncrementResponse
	for i := 0; i < 10; i++ {
		lastResp = doWorkout(ctx, t, token, "core")
	}
	assert.Equal(t, 10, lastResp.Progress.TotalCompleted)
	assert.Contains(t, lastResp.Badges, "badge_1")
	assert.Contains(t, lastResp.Badges, "badge_2")

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/badges", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var badgesResp workouts.BadgesResponse
	require.NoError(t, json.Unmarshal(respBytes, &badgesResp))
	require.Len(t, badgesResp.Badges, 5)

	earned := make(map[string]bool)
	for _, b := range badgesResp.Badges {
		earned[b.ID] = b.Earned
	}
	assert.True(t, earned["badge_1"])
	assert.True(t, earned["badge_2"])
	assert.False(t, earned["badge_5"])
}

func (s *IntegrationTestSuite) TestWorkoutsInvalidType() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	doRegister(ctx, t, "typo@movementor.app", "str0ngPass")
	token := doLogin(ctx, t, "typo@movementor.app", "str0ngPass")

	reqJson, err := json.Marshal(workouts.WorkoutRequest{Type: "underwater basket weaving"})
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts/increment", serverEndpoint), bytes.NewBuffer(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestWorkoutsReset() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	doRegister(ctx, t, "restart@movementor.app", "str0ngPass")
	token := doLogin(ctx, t, "restart@movementor.app", "str0ngPass")

	doWorkout(ctx, t, token, "yoga")
	doWorkout(ctx, t, token, "legs")

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/workouts/reset", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/progress", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, token)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var progressResp workouts.ProgressInfo
	require.NoError(t, json.Unmarshal(respBytes, &progressResp))
	assert.Equal(t, 0, progressResp.TotalCompleted)
	assert.Equal(t, 0, progressResp.StreakCount)
	// the daily ledger survives a reset
	assert.Len(t, progressResp.DailyStats, 1)
}
