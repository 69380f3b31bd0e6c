package handler

import (
	"net/http"
	"strconv"

	"talenthub-api/internal/model"
	"talenthub-api/internal/service"
	"talenthub-api/pkg/apierror"
	"talenthub-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// TalentHandler serves the public talent directory.
type TalentHandler struct {
	directory   *service.DirectoryService
	showcases   *service.ShowcaseService
	investments *service.InvestmentService
}

// NewTalentHandler creates a new talent handler.
func NewTalentHandler(
	directory *service.DirectoryService,
	showcases *service.ShowcaseService,
	investments *service.InvestmentService,
) *TalentHandler {
	return &TalentHandler{
		directory:   directory,
		showcases:   showcases,
		investments: investments,
	}
}

// List handles GET /talents?q=&category=&location=&limit=&offset=
func (h *TalentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	filter := model.TalentFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		Limit:    limit,
		Offset:   offset,
	}

	talents, total, err := h.directory.Search(r.Context(), filter)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to search talents"))
		return
	}

	if talents == nil {
		talents = []model.User{}
	}
	response.JSONWithMeta(w, http.StatusOK, talents, filter.Limit, filter.Offset, total)
}

// Get handles GET /talents/{talentID}
func (h *TalentHandler) Get(w http.ResponseWriter, r *http.Request) {
	talentID := chi.URLParam(r, "talentID")

	talent, err := h.directory.GetTalent(r.Context(), talentID)
	if err != nil {
		if service.IsNotFound(err) {
			response.Error(w, apierror.NotFound("talent not found"))
			return
		}
		response.Error(w, apierror.InternalError("failed to load talent"))
		return
	}

	response.OK(w, talent)
}

// ListShowcases handles GET /talents/{talentID}/showcases
func (h *TalentHandler) ListShowcases(w http.ResponseWriter, r *http.Request) {
	talentID := chi.URLParam(r, "talentID")

	if _, err := h.directory.GetTalent(r.Context(), talentID); err != nil {
		if service.IsNotFound(err) {
			response.Error(w, apierror.NotFound("talent not found"))
			return
		}
		response.Error(w, apierror.InternalError("failed to load talent"))
		return
	}

	if h.showcases == nil {
		response.Error(w, apierror.ServiceUnavailable("showcase storage unavailable"))
		return
	}

	showcases, err := h.showcases.ListByOwner(r.Context(), talentID)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to list showcases"))
		return
	}

	if showcases == nil {
		showcases = []model.Showcase{}
	}
	response.OK(w, showcases)
}

// InvestmentSummary handles GET /talents/{talentID}/investments/summary
func (h *TalentHandler) InvestmentSummary(w http.ResponseWriter, r *http.Request) {
	talentID := chi.URLParam(r, "talentID")

	if h.investments == nil {
		response.Error(w, apierror.ServiceUnavailable("payments unavailable"))
		return
	}

	summary, err := h.investments.SummarizeTalent(r.Context(), talentID)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to summarize investments"))
		return
	}

	response.OK(w, summary)
}
