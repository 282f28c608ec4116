package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/dashboard"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/programs"
)

func (s *IntegrationTestSuite) TestCatalog_PublicReads() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var exercises []catalog.Exercise
	doJSONInto(ctx, t, http.MethodGet, "/api/exercises?muscle=chest", "", nil, http.StatusOK, &exercises)
	require.Len(t, exercises, 2)

	var list []programs.Program
	doJSONInto(ctx, t, http.MethodGet, "/api/programs", "", nil, http.StatusOK, &list)
	require.Len(t, list, 1)

	var program programs.Program
	doJSONInto(ctx, t, http.MethodGet, "/api/programs/full-body", "", nil, http.StatusOK, &program)
	assert.Len(t, program.Days, 3)

	status, _ := doJSON(ctx, t, http.MethodGet, "/api/exercises/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestDashboard_ProgramWeightAndActivity() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := signUp(ctx, t)

	var empty dashboard.Dashboard
	doJSONInto(ctx, t, http.MethodGet, "/api/dashboard", user.Token, nil, http.StatusOK, &empty)
	assert.Equal(t, user.User.Name, empty.UserName)
	assert.Nil(t, empty.Goal)
	assert.Nil(t, empty.ActiveProgram)
	assert.Nil(t, empty.TodaysWorkout)

	doJSONInto(ctx, t, http.MethodPost, "/api/programs/enroll", user.Token, programs.EnrollRequest{ProgramID: "full-body"}, http.StatusOK, nil)
	status, _ := doJSON(ctx, t, http.MethodPost, "/api/programs/enroll", user.Token, programs.EnrollRequest{ProgramID: "no-such-program"})
	assert.Equal(t, http.StatusNotFound, status)

	startSession(ctx, s, user.Token)

	var board dashboard.Dashboard
	doJSONInto(ctx, t, http.MethodGet, "/api/dashboard", user.Token, nil, http.StatusOK, &board)
	require.NotNil(t, board.ActiveProgram)
	assert.Equal(t, "full-body", board.ActiveProgram.ID)
	assert.NotNil(t, board.TodaysWorkout)

	doJSONInto(ctx, t, http.MethodPost, "/api/progress/weight", user.Token, map[string]string{"weight": "81.4"}, http.StatusCreated, nil)
	status, _ = doJSON(ctx, t, http.MethodPost, "/api/progress/weight", user.Token, map[string]string{"weight": "-3"})
	assert.Equal(t, http.StatusBadRequest, status)

	var progress dashboard.Progress
	doJSONInto(ctx, t, http.MethodGet, "/api/progress", user.Token, nil, http.StatusOK, &progress)
	require.Len(t, progress.WeightHistory, 1)
	assert.Equal(t, 81.4, progress.WeightHistory[0].Weight)
	assert.Equal(t, 1, progress.TotalWorkouts)

	doJSONInto(ctx, t, http.MethodPost, "/api/programs/quit", user.Token, nil, http.StatusOK, nil)
	var afterQuit dashboard.Dashboard
	doJSONInto(ctx, t, http.MethodGet, "/api/dashboard", user.Token, nil, http.StatusOK, &afterQuit)
	assert.Nil(t, afterQuit.ActiveProgram)

	var page events.Page
	doJSONInto(ctx, t, http.MethodGet, "/api/progress/activity/page/0/size/20", user.Token, nil, http.StatusOK, &page)
	types := make([]events.Type, 0, len(page.Events))
	for _, e := range page.Events {
		assert.Equal(t, user.User.ID, e.UserID)
		types = append(types, e.Type)
	}
	assert.Equal(t, 4, page.Total)
	assert.ElementsMatch(t, []events.Type{
		events.TypeProgramEnrolled,
		events.TypeWorkoutStarted,
		events.TypeWeightReported,
		events.TypeProgramQuit,
	}, types)
}

func (s *IntegrationTestSuite) TestMcp_RequiresSecret() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, _ := doJSON(ctx, t, http.MethodPost, "/mcp", "", map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/list",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}
