package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-matching-backend/internal/delivery/http/response"
	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUC domain.MatchUsecase
}

func NewMatchHandler(protected *gin.RouterGroup, matchUC domain.MatchUsecase) {
	handler := &MatchHandler{matchUC: matchUC}

	matches := protected.Group("/matches")
	{
		matches.POST("", handler.Match)
		matches.POST("/export", handler.Export)
	}

	protected.GET("/candidates/:id/matches", handler.PostingsForCandidate)
	protected.GET("/jobs/:id/matches", handler.CandidatesForPosting)
}

// Match godoc
// @Summary      Rank matches for a subject
// @Description  Scores the subject against the opposite pool and returns ranked matches with reasons
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        request  body      domain.MatchRequest  true  "Match request"
// @Success      200      {object}  response.Response{data=domain.MatchResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /matches [post]
// @Security     BearerAuth
func (h *MatchHandler) Match(c *gin.Context) {
	var req domain.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	h.respond(c, req)
}

// PostingsForCandidate godoc
// @Summary      Rank job postings for a candidate
// @Tags         matches
// @Produce      json
// @Param        id         path      string  true   "Candidate profile ID"
// @Param        limit      query     int     false  "Maximum number of matches (0 = all)"
// @Param        min_score  query     int     false  "Hide matches scoring below this value"
// @Success      200        {object}  response.Response{data=domain.MatchResponse}
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /candidates/{id}/matches [get]
// @Security     BearerAuth
func (h *MatchHandler) PostingsForCandidate(c *gin.Context) {
	h.matchFromPath(c, domain.ModePostingsForCandidate)
}

// CandidatesForPosting godoc
// @Summary      Rank candidates for a job posting
// @Tags         matches
// @Produce      json
// @Param        id         path      string  true   "Job posting ID"
// @Param        limit      query     int     false  "Maximum number of matches (0 = all)"
// @Param        min_score  query     int     false  "Hide matches scoring below this value"
// @Success      200        {object}  response.Response{data=domain.MatchResponse}
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /jobs/{id}/matches [get]
// @Security     BearerAuth
func (h *MatchHandler) CandidatesForPosting(c *gin.Context) {
	h.matchFromPath(c, domain.ModeCandidatesForPosting)
}

// Export godoc
// @Summary      Export matches to Excel/CSV
// @Description  Runs a match request and downloads the ranked result as an xlsx or csv file
// @Tags         matches
// @Accept       json
// @Produce      application/octet-stream
// @Param        request  body      domain.MatchExportRequest  true  "Export request"
// @Success      200      {file}    binary
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /matches/export [post]
// @Security     BearerAuth
func (h *MatchHandler) Export(c *gin.Context) {
	var req domain.MatchExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}
	if !req.Match.Mode.Valid() {
		c.Error(invalidMode())
		return
	}
	if err := authorizeMatch(c, req.Match); err != nil {
		c.Error(err)
		return
	}

	data, filename, err := h.matchUC.Export(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if req.Format == domain.ExportFormatCSV {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (h *MatchHandler) matchFromPath(c *gin.Context, mode domain.MatchMode) {
	req := domain.MatchRequest{Mode: mode, SubjectID: c.Param("id")}

	var err error
	if req.Limit, err = queryInt(c, "limit"); err != nil {
		c.Error(err)
		return
	}
	if req.MinScore, err = queryInt(c, "min_score"); err != nil {
		c.Error(err)
		return
	}

	h.respond(c, req)
}

func (h *MatchHandler) respond(c *gin.Context, req domain.MatchRequest) {
	// Mode is checked first so every role sees the same 400 for a bad mode.
	if !req.Mode.Valid() {
		c.Error(invalidMode())
		return
	}
	if err := authorizeMatch(c, req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.matchUC.Match(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Matches retrieved", result)
}

// authorizeMatch gates modes by role. Candidates may only rank postings for
// their own profile, employers only rank candidates. Agents and admins may do both.
func authorizeMatch(c *gin.Context, req domain.MatchRequest) error {
	role := c.GetString(string(domain.KeyUserRole))

	switch role {
	case domain.RoleAgent, domain.RoleAdmin:
		return nil
	case domain.RoleEmployer:
		if req.Mode != domain.ModeCandidatesForPosting {
			return apperror.Forbidden("Employers can only match candidates for a job posting")
		}
		return nil
	case domain.RoleCandidate:
		if req.Mode != domain.ModePostingsForCandidate {
			return apperror.Forbidden("Candidates can only match job postings for their own profile")
		}
		if req.SubjectID != c.GetString(string(domain.KeyUserID)) {
			return apperror.Forbidden("Candidates can only match job postings for their own profile")
		}
		return nil
	}
	return apperror.Forbidden("Role is not allowed to request matches")
}

func invalidMode() *apperror.AppError {
	return apperror.BadRequest(fmt.Sprintf("mode must be %s or %s", domain.ModePostingsForCandidate, domain.ModeCandidatesForPosting))
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.BadRequest(fmt.Sprintf("%s must be an integer", key))
	}
	return v, nil
}
