package submission

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kothscore/helios/pkg/adapters"
	"github.com/kothscore/helios/pkg/models/api"
	"github.com/kothscore/helios/pkg/models/domain"
	"github.com/kothscore/helios/pkg/services/scoreboard"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	scoreboard scoreboard.Service
}

func NewHandler(sb scoreboard.Service) *Handler {
	return &Handler{
		scoreboard: sb,
	}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.SubmissionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("malformed submission")
		writeError(w, http.StatusBadRequest, "malformed submission")
		return
	}

	sub, err := h.scoreboard.Submit(ctx, req)
	if errors.Is(err, scoreboard.ErrInvalidSubmission) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("team", req.ID).Msg("failed to record submission")
		writeError(w, http.StatusInternalServerError, "failed to record submission")
		return
	}

	writeJSON(w, http.StatusCreated, adapters.MapDomainSubmissionToAPI(sub))
}

func (h *Handler) ListTeamSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	team := chi.URLParam(r, "team")

	subs, err := h.scoreboard.History(ctx, team)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("team", team).Msg("failed to list submissions")
		writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}

	writeJSON(w, http.StatusOK, toAPI(subs))
}

func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subs, err := h.scoreboard.Standings(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load scoreboard")
		writeError(w, http.StatusInternalServerError, "failed to load scoreboard")
		return
	}

	writeJSON(w, http.StatusOK, toAPI(subs))
}

func toAPI(subs []domain.Submission) []api.Submission {
	out := make([]api.Submission, 0, len(subs))
	for _, s := range subs {
		out = append(out, adapters.MapDomainSubmissionToAPI(s))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.Error{Error: msg})
}
