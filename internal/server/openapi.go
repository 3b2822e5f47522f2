package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Bingo Hunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the team bingo scavenger hunt.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/register
	register, _ := r.NewOperationContext(http.MethodPost, "/api/register")
	register.SetSummary("Register team")
	register.SetDescription("Registers a team of 3 to 5 players and deals it a fresh 3x3 card.")
	register.AddReqStructure(RegisterRequest{})
	register.AddRespStructure(RegisterResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	register.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	register.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(register)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Game state")
	getState.SetDescription("Returns the event configuration and, when teamId is given, that team's snapshot with derived state and completed lines.")
	getState.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("Team event stream")
	getEvents.SetDescription("Server-sent events for one team: cell marks, completion, resets.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getEvents)

	// GET /api/leaderboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getBoard.SetSummary("Leaderboard")
	getBoard.SetDescription("Standings ordered by words found, ties broken by elapsed time.")
	getBoard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getBoard)

	// POST /api/team/start
	startTeam, _ := r.NewOperationContext(http.MethodPost, "/api/team/start")
	startTeam.SetSummary("Start attempt")
	startTeam.SetDescription("Starts the team's timer. Idempotent: repeat calls return the original start time.")
	startTeam.AddReqStructure(TeamRequest{})
	startTeam.AddRespStructure(StartResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	startTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	startTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(startTeam)

	// POST /api/card/mark
	mark, _ := r.NewOperationContext(http.MethodPost, "/api/card/mark")
	mark.SetSummary("Mark cell")
	mark.SetDescription("Toggles one cell's completion and reports whole-card status and completed lines.")
	mark.AddReqStructure(MarkRequest{})
	mark.AddRespStructure(MarkResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	mark.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	mark.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(mark)

	// POST /api/team/end
	endTeam, _ := r.NewOperationContext(http.MethodPost, "/api/team/end")
	endTeam.SetSummary("End attempt")
	endTeam.SetDescription("Stops the team's timer without a full card. No-op when already ended or completed.")
	endTeam.AddReqStructure(TeamRequest{})
	endTeam.AddRespStructure(AckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	endTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(endTeam)

	// POST /api/admin/verify
	verify, _ := r.NewOperationContext(http.MethodPost, "/api/admin/verify")
	verify.SetSummary("Verify admin password")
	verify.AddReqStructure(VerifyRequest{})
	verify.AddRespStructure(VerifyResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	verify.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(verify)

	// GET /api/teams
	listTeams, _ := r.NewOperationContext(http.MethodGet, "/api/teams")
	listTeams.SetSummary("List teams")
	listTeams.SetDescription("Admin listing: completed teams first by completion time, the rest in registration order.")
	listTeams.AddRespStructure(TeamListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listTeams)

	// POST /api/team/update
	updateTeam, _ := r.NewOperationContext(http.MethodPost, "/api/team/update")
	updateTeam.SetSummary("Rename team")
	updateTeam.AddReqStructure(TeamUpdateRequest{})
	updateTeam.AddRespStructure(AckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	updateTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(updateTeam)

	// POST /api/team/delete
	deleteTeam, _ := r.NewOperationContext(http.MethodPost, "/api/team/delete")
	deleteTeam.SetSummary("Delete team")
	deleteTeam.SetDescription("Removes a team permanently. Deleting an absent team is a no-op.")
	deleteTeam.AddReqStructure(TeamRequest{})
	deleteTeam.AddRespStructure(AckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(deleteTeam)

	// POST /api/admin/game/start
	startGame, _ := r.NewOperationContext(http.MethodPost, "/api/admin/game/start")
	startGame.SetSummary("Start game")
	startGame.SetDescription("Starts the shared clock under the global start policy.")
	startGame.AddRespStructure(GameStartResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(startGame)

	// POST /api/admin/game/reset
	reset, _ := r.NewOperationContext(http.MethodPost, "/api/admin/game/reset")
	reset.SetSummary("Reset all teams")
	reset.SetDescription("Clears every team's completion and timing state; card labels and rosters survive.")
	reset.AddRespStructure(AckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(reset)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
