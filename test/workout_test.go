package test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
)

// rawSet bypasses pkg.Number so the wire carries strings, as the mobile client sends them.
type rawSet struct {
	ExerciseID string `json:"exerciseId"`
	Reps       string `json:"reps"`
	Weight     string `json:"weight"`
}

func startSession(ctx context.Context, s *IntegrationTestSuite, token string) sessions.Session {
	var session sessions.Session
	doJSONInto(ctx, s.T(), http.MethodPost, "/api/workout-session", token, sessions.StartRequest{}, http.StatusCreated, &session)
	require.NotEmpty(s.T(), session.ID)
	return session
}

func (s *IntegrationTestSuite) TestWorkout_FullScenario() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := signUp(ctx, t)
	session := startSession(ctx, s, user.Token)
	assert.Equal(t, sessions.StatusStarted, session.Status)

	path := "/api/workout-session/" + session.ID
	doJSONInto(ctx, t, http.MethodPost, path+"/exercise", user.Token, sessions.AttachRequest{ExerciseID: "bench-press"}, http.StatusOK, nil)

	var set sessions.SetEntry
	doJSONInto(ctx, t, http.MethodPost, path+"/set", user.Token, rawSet{ExerciseID: "bench-press", Reps: "10", Weight: "50"}, http.StatusCreated, &set)
	assert.Equal(t, 10, set.Reps)
	assert.Equal(t, 50.0, set.Weight)
	doJSONInto(ctx, t, http.MethodPost, path+"/set", user.Token, rawSet{ExerciseID: "bench-press", Reps: "8", Weight: "60"}, http.StatusCreated, nil)

	var summary sessions.Summary
	doJSONInto(ctx, t, http.MethodGet, path+"/summary", user.Token, nil, http.StatusOK, &summary)
	assert.Equal(t, 2, summary.TotalSets)
	assert.Equal(t, 980.0, summary.TotalVolume)
	require.Len(t, summary.PerExerciseBest, 1)
	assert.Equal(t, 60.0, summary.PerExerciseBest[0].BestWeight)
	assert.Equal(t, 8, summary.PerExerciseBest[0].BestReps)

	var finished sessions.Session
	doJSONInto(ctx, t, http.MethodPut, path+"/finish", user.Token, nil, http.StatusOK, &finished)
	assert.Equal(t, sessions.StatusCompleted, finished.Status)
	require.NotNil(t, finished.EndedAt)
	assert.False(t, finished.EndedAt.Before(finished.Date))

	var fetched sessions.Session
	doJSONInto(ctx, t, http.MethodGet, path, user.Token, nil, http.StatusOK, &fetched)
	assert.Equal(t, sessions.StatusCompleted, fetched.Status)
	assert.Equal(t, 1, fetched.ExerciseCount)
	require.Len(t, fetched.Exercises, 1)
	assert.Len(t, fetched.Exercises[0].Sets, 2)

	// finishing again keeps the first end time
	var again sessions.Session
	doJSONInto(ctx, t, http.MethodPut, path+"/finish", user.Token, nil, http.StatusOK, &again)
	require.NotNil(t, again.EndedAt)
	assert.True(t, finished.EndedAt.Equal(*again.EndedAt))

	status, _ := doJSON(ctx, t, http.MethodPost, path+"/exercise", user.Token, sessions.AttachRequest{ExerciseID: "push-up"})
	assert.Equal(t, http.StatusConflict, status)
}

func (s *IntegrationTestSuite) TestWorkout_AttachIsIdempotent() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := signUp(ctx, t)
	session := startSession(ctx, s, user.Token)
	path := "/api/workout-session/" + session.ID + "/exercise"

	var first, second sessions.WorkoutExercise
	doJSONInto(ctx, t, http.MethodPost, path, user.Token, sessions.AttachRequest{ExerciseID: "goblet-squat"}, http.StatusOK, &first)
	doJSONInto(ctx, t, http.MethodPost, path, user.Token, sessions.AttachRequest{ExerciseID: "goblet-squat"}, http.StatusOK, &second)
	assert.Equal(t, first.ID, second.ID)

	var rows int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_exercise WHERE session_id = $1 AND exercise_id = $2`,
		session.ID, "goblet-squat",
	).Scan(&rows))
	assert.Equal(t, 1, rows)

	status, _ := doJSON(ctx, t, http.MethodPost, path, user.Token, sessions.AttachRequest{ExerciseID: "no-such-exercise"})
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkout_Ownership() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	owner := signUp(ctx, t)
	other := signUp(ctx, t)
	session := startSession(ctx, s, owner.Token)
	path := "/api/workout-session/" + session.ID

	status, _ := doJSON(ctx, t, http.MethodGet, path, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(ctx, t, http.MethodPost, path+"/set", other.Token, rawSet{ExerciseID: "push-up", Reps: "10", Weight: "0"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(ctx, t, http.MethodGet, "/api/workout-session/missing-session", owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkout_InvalidSetInput() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := signUp(ctx, t)
	session := startSession(ctx, s, user.Token)
	path := "/api/workout-session/" + session.ID + "/set"

	status, body := doJSON(ctx, t, http.MethodPost, path, user.Token, rawSet{ExerciseID: "push-up", Reps: "ten", Weight: "0"})
	assert.Equal(t, http.StatusBadRequest, status)

	var errResp map[string]string
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.NotEmpty(t, errResp["error"])

	// past INT range must be rejected before it reaches postgres
	status, _ = doJSON(ctx, t, http.MethodPost, path, user.Token, rawSet{ExerciseID: "push-up", Reps: "99999999999", Weight: "0"})
	assert.Equal(t, http.StatusBadRequest, status)

	var sets int
	require.NoError(t, s.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM set_entry se
		JOIN workout_exercise we ON we.id = se.workout_exercise_id
		WHERE we.session_id = $1`, session.ID,
	).Scan(&sets))
	assert.Zero(t, sets)
}

func (s *IntegrationTestSuite) TestWorkout_ListSinceFollowsActivity() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, s.dsn)
	require.NoError(t, err)
	defer pool.Close()
	repo := sessions.NewRepo(pool)

	user := signUp(ctx, t)
	idle := startSession(ctx, s, user.Token)
	active := startSession(ctx, s, user.Token)
	activePath := "/api/workout-session/" + active.ID
	doJSONInto(ctx, t, http.MethodPost, activePath+"/exercise", user.Token, sessions.AttachRequest{ExerciseID: "bench-press"}, http.StatusOK, nil)

	var mark time.Time
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT clock_timestamp()`).Scan(&mark))

	ids := func() []string {
		list, err := repo.ListSince(ctx, mark)
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, session := range list {
			ids = append(ids, session.ID)
		}
		return ids
	}
	assert.NotContains(t, ids(), idle.ID)
	assert.NotContains(t, ids(), active.ID)

	// a set logged after the mark brings the whole session back
	doJSONInto(ctx, t, http.MethodPost, activePath+"/set", user.Token, rawSet{ExerciseID: "bench-press", Reps: "5", Weight: "100"}, http.StatusCreated, nil)
	assert.Contains(t, ids(), active.ID)
	assert.NotContains(t, ids(), idle.ID)

	// so does finishing
	doJSONInto(ctx, t, http.MethodPut, "/api/workout-session/"+idle.ID+"/finish", user.Token, nil, http.StatusOK, nil)
	assert.Contains(t, ids(), idle.ID)
}
