package handler

import (
	"github.com/fadilmartias/bgv-backend/internal/dto"
	"github.com/fadilmartias/bgv-backend/internal/usecase"
	"github.com/fadilmartias/bgv-backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

type CandidateHandler struct {
	uc        *usecase.CandidateUsecase
	validator *util.Validator
}

func NewCandidateHandler(uc *usecase.CandidateUsecase, v *util.Validator) *CandidateHandler {
	return &CandidateHandler{uc: uc, validator: v}
}

func (h *CandidateHandler) RegisterRoutes(app fiber.Router) {
	r := app.Group("/candidate")
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/insights", h.Insights)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Get("/:id/report", h.Report)
	r.Post("/:id/bank-account", h.UpsertBankAccount)
	r.Post("/:id/aadhar/otp", h.SendAadhaarOTP)
	r.Post("/:id/aadhar/verify", h.VerifyAadhaarOTP)
}

func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCandidateRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate"}, err)
	}
	candidate, err := h.uc.AddCandidate(c.UserContext(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to add candidate"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Candidate added",
		Data:    dto.NewCandidateDTO(candidate),
	})
}

func (h *CandidateHandler) List(c *fiber.Ctx) error {
	var q dto.ListCandidatesQuery
	if err := bindQuery(c, h.validator, &q); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid query"}, err)
	}
	items, pagination, err := h.uc.ListCandidates(c.UserContext(), q)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to list candidates"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list candidates",
		Data:       dto.NewCandidateDTOs(items),
		Pagination: pagination,
	})
}

func (h *CandidateHandler) Insights(c *fiber.Ctx) error {
	companyID := c.QueryInt("company_id", 0)
	if companyID < 0 {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid company_id"}, util.ErrInvalidRequestID)
	}
	insights, err := h.uc.Insights(c.UserContext(), uint(companyID))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to load insights"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Success get insights", Data: insights})
}

func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	candidate, err := h.uc.GetCandidate(c.UserContext(), id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "candidate not found"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Success get candidate", Data: candidate})
}

// Update saves the profile form. With "verify": true the candidate is
// submitted and the pipeline result is returned alongside.
func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	var req dto.UpdateCandidateRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate"}, err)
	}
	candidate, result, err := h.uc.UpdateCandidate(c.UserContext(), id, req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to update candidate"}, err)
	}
	data := fiber.Map{"candidate": candidate}
	if result != nil {
		data["verification"] = dto.NewPipelineResultDTO(result)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Candidate updated", Data: data})
}

func (h *CandidateHandler) Report(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	report, err := h.uc.GetReport(c.UserContext(), id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to load report"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Success get report", Data: report})
}

func (h *CandidateHandler) UpsertBankAccount(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	var req dto.UpsertBankAccountRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid bank account"}, err)
	}
	account, err := h.uc.UpsertBankAccount(c.UserContext(), id, req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to save bank account"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Bank account saved", Data: account})
}

func (h *CandidateHandler) SendAadhaarOTP(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	var req dto.AadhaarOTPRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid aadhaar number"}, err)
	}
	ref, err := h.uc.SendAadhaarOTP(c.UserContext(), id, req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to send otp"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "OTP sent",
		Data:    fiber.Map{"referenceId": ref},
	})
}

func (h *CandidateHandler) VerifyAadhaarOTP(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid candidate id"}, err)
	}
	var req dto.AadhaarVerifyRequest
	if err := bindBody(c, h.validator, &req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "invalid otp"}, err)
	}
	details, err := h.uc.VerifyAadhaarOTP(c.UserContext(), id, req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{Message: "failed to verify otp"}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{Message: "Aadhaar verified", Data: details})
}
