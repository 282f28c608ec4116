package mcp

import (
	"crypto/subtle"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

const SecretHeader = "X-MCP-Secret"

// NewServer builds the fitness context MCP server.
// Mounted at /mcp by the main backend and served over stdio by cmd/fitness_mcp.
func NewServer(pool *pgxpool.Pool, exercisesRepo ExercisesRepo, programsRepo ProgramsRepo, sessionsRepo SessionsRepo) *mcp.Server {
	return newServer(NewContextService(NewSchemaRepo(pool), exercisesRepo, programsRepo, sessionsRepo))
}

func newServer(svc contextService) *mcp.Server {
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitness-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fitness_schema",
		Description: "Returns the DB schema of the fitness tables (catalog, programs, profiles, workout sessions, meals, weight, streaks, activity) grouped by app area, with column types, nullability, defaults and foreign key targets.",
	}, h.GetFitnessSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Searches the exercise catalog. Optional filters: search (name substring), muscle (primary muscle name), equipment (substring). Returns at most 50 exercises.",
	}, h.SearchExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_program",
		Description: "Returns a training program with its days and, per day, the exercises with target sets and reps. Arg: program_id.",
	}, h.GetProgramTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_summary",
		Description: "Returns the summary of a workout session: duration in minutes, total sets, total volume (reps x weight) and the best set per exercise. Arg: session_id.",
	}, h.GetWorkoutSummaryTool())

	return s
}

// NewHTTPHandler serves the server over streamable HTTP. Requests must carry the shared
// secret in the X-MCP-Secret header; an empty secret rejects everything.
func NewHTTPHandler(server *mcp.Server, secret string) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(SecretHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(given), []byte(secret)) != 1 {
			pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		streamable.ServeHTTP(w, r)
	})
}
