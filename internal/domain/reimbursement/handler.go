package reimbursement

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// APIVersion is reported by the status endpoint.
const APIVersion = "1.0.0"

// Handler exposes the reimbursement pipeline over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the reimbursement endpoints under the given group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reimbursement")
	g.POST("/calculate", h.Calculate)
	g.POST("/calculate-with-plan", h.CalculateWithPlan)
	g.GET("/history", h.History)
	g.GET("/history/patient/:taxId", h.HistoryByPatient)
	g.GET("/status", h.Status)
}

type ReimbursementResponse struct {
	Amount             *money.Money   `json:"amount"`
	CoveragePercentage *money.Percent `json:"coveragePercentage"`
	ReimbursedAmount   money.Money    `json:"reimbursedAmount"`
	Status             string         `json:"status"`
}

type HistoryResponse struct {
	Reimbursement ReimbursementResponse `json:"reimbursement"`
	Patient       Patient               `json:"patient"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func (h *Handler) Calculate(c echo.Context) error {
	var cons Consultation
	if err := c.Bind(&cons); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Status: "error"})
	}
	cons.ID = uuid.New()

	amount, err := h.svc.CalculateReimbursement(c.Request().Context(), &cons)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ReimbursementResponse{
		Amount:             cons.Amount,
		CoveragePercentage: cons.CoveragePercentage,
		ReimbursedAmount:   amount,
		Status:             StatusSuccess,
	})
}

func (h *Handler) CalculateWithPlan(c echo.Context) error {
	plan, err := ParsePlan(c.QueryParam("planType"))
	if err != nil {
		return writeError(c, err)
	}

	var cons Consultation
	if err := c.Bind(&cons); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Status: "error"})
	}
	cons.ID = uuid.New()

	amount, err := h.svc.CalculateReimbursementWithPlan(c.Request().Context(), &cons, plan)
	if err != nil {
		return writeError(c, err)
	}
	pct := plan.CoveragePercentage()
	return c.JSON(http.StatusOK, ReimbursementResponse{
		Amount:             cons.Amount,
		CoveragePercentage: &pct,
		ReimbursedAmount:   amount,
		Status:             StatusSuccess,
	})
}

func (h *Handler) History(c echo.Context) error {
	entries, err := h.svc.History(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toHistoryResponses(entries))
}

func (h *Handler) HistoryByPatient(c echo.Context) error {
	entries, err := h.svc.HistoryByPatient(c.Request().Context(), c.Param("taxId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toHistoryResponses(entries))
}

func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "API running", Version: APIVersion})
}

func toHistoryResponses(entries []*HistoryEntry) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryResponse{
			Reimbursement: ReimbursementResponse{
				Amount:             e.Consultation.Amount,
				CoveragePercentage: e.Consultation.CoveragePercentage,
				ReimbursedAmount:   e.ReimbursedAmount,
				Status:             e.Status,
			},
			Patient: e.Patient,
		})
	}
	return out
}

// writeError maps domain errors onto the wire format. Validation failures
// and authorization denials are both client errors.
func writeError(c echo.Context, err error) error {
	if IsInvalidInput(err) || IsUnauthorized(err) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Status: "error"})
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error", Status: "error"})
}
