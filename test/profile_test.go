package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/profile"
)

type rawDraft struct {
	Goal          string   `json:"goal"`
	Level         string   `json:"level"`
	ActivityLevel string   `json:"activityLevel,omitempty"`
	Age           string   `json:"age,omitempty"`
	Weight        string   `json:"weight,omitempty"`
	Equipment     []string `json:"equipment"`
}

func (s *IntegrationTestSuite) equipmentOf(ctx context.Context, userID string) []string {
	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM user_equipment WHERE user_id = $1 ORDER BY name`, userID)
	require.NoError(s.T(), err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(s.T(), rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(s.T(), rows.Err())
	return names
}

func (s *IntegrationTestSuite) TestProfile_EquipmentIsReplaced() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := signUp(ctx, t)

	status, _ := doJSON(ctx, t, http.MethodGet, "/api/profile", user.Token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	doJSONInto(ctx, t, http.MethodPost, "/api/profile", user.Token, rawDraft{
		Goal:      "FAT_LOSS",
		Level:     "BEGINNER",
		Age:       "29",
		Weight:    "82.5",
		Equipment: []string{"DUMBBELLS", "BODYWEIGHT"},
	}, http.StatusOK, nil)
	assert.Equal(t, []string{"BODYWEIGHT", "DUMBBELLS"}, s.equipmentOf(ctx, user.User.ID))

	doJSONInto(ctx, t, http.MethodPost, "/api/profile", user.Token, rawDraft{
		Goal:      "FAT_LOSS",
		Level:     "BEGINNER",
		Equipment: []string{"BARBELL"},
	}, http.StatusOK, nil)
	assert.Equal(t, []string{"BARBELL"}, s.equipmentOf(ctx, user.User.ID))

	var saved profile.Profile
	doJSONInto(ctx, t, http.MethodGet, "/api/profile", user.Token, nil, http.StatusOK, &saved)
	assert.Equal(t, profile.GoalFatLoss, saved.Goal)
	assert.Equal(t, []string{"BARBELL"}, saved.Equipment)
}

func (s *IntegrationTestSuite) TestProfile_RejectedSaveChangesNothing() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := signUp(ctx, t)

	doJSONInto(ctx, t, http.MethodPost, "/api/profile", user.Token, rawDraft{
		Goal:      "STRENGTH",
		Level:     "ADVANCED",
		Equipment: []string{"BARBELL"},
	}, http.StatusOK, nil)

	status, _ := doJSON(ctx, t, http.MethodPost, "/api/profile", user.Token, rawDraft{
		Goal:      "STRENGTH",
		Level:     "ADVANCED",
		Age:       "old",
		Equipment: []string{"KETTLEBELL"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var saved profile.Profile
	doJSONInto(ctx, t, http.MethodGet, "/api/profile", user.Token, nil, http.StatusOK, &saved)
	assert.Equal(t, profile.GoalStrength, saved.Goal)
	assert.Nil(t, saved.Age)
	assert.Equal(t, []string{"BARBELL"}, s.equipmentOf(ctx, user.User.ID))
}
