package dto

import (
	"time"

	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/verification"
)

type CreateCandidateRequest struct {
	CompanyID      uint   `json:"company_id" validate:"required"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	MiddleName     string `json:"middle_name" validate:"max=100"`
	LastName       string `json:"last_name" validate:"max=100"`
	Gender         string `json:"gender" validate:"omitempty,gender"`
	DOB            string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	FatherName     string `json:"father_name" validate:"max=100"`
	MotherName     string `json:"mother_name" validate:"max=100"`
	MaritalStatus  string `json:"marital_status" validate:"max=50"`
	Phone          string `json:"phone" validate:"required,min=10,max=20"`
	AlternatePhone string `json:"alternate_phone" validate:"max=20"`
	Email          string `json:"email" validate:"required,email"`
}

// UpdateCandidateRequest is a partial update. Nil pointers and absent lists
// leave the stored values alone; a present list replaces the stored one.
type UpdateCandidateRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	MiddleName     *string `json:"middle_name" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,max=100"`
	Gender         *string `json:"gender" validate:"omitempty,gender"`
	DOB            *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	FatherName     *string `json:"father_name" validate:"omitempty,max=100"`
	MotherName     *string `json:"mother_name" validate:"omitempty,max=100"`
	MaritalStatus  *string `json:"marital_status" validate:"omitempty,max=50"`
	Phone          *string `json:"phone" validate:"omitempty,min=10,max=20"`
	AlternatePhone *string `json:"alternate_phone" validate:"omitempty,max=20"`
	Email          *string `json:"email" validate:"omitempty,email"`

	Meta        *CandidateMetaRequest `json:"meta" validate:"omitempty"`
	Nid         *NidRequest           `json:"nid" validate:"omitempty"`
	BankAccount *BankAccountRequest   `json:"bankAccount" validate:"omitempty"`
	Address     []AddressRequest      `json:"address" validate:"omitempty,dive"`
	Education   []EducationRequest    `json:"education" validate:"omitempty,dive"`
	Employment  *EmploymentWrapper    `json:"employment" validate:"omitempty"`

	// Verify submits the candidate for verification after saving.
	Verify bool `json:"verify"`
}

// CandidateMetaRequest carries the profile form's basic details.
type CandidateMetaRequest struct {
	FirstName      string  `json:"firstName" validate:"max=100"`
	MiddleName     string  `json:"middleName" validate:"max=100"`
	LastName       string  `json:"lastName" validate:"max=100"`
	Phone          string  `json:"phone" validate:"omitempty,min=10,max=20"`
	Email          string  `json:"email" validate:"omitempty,email"`
	AlternatePhone string  `json:"alternatePhone" validate:"max=20"`
	Gender         *string `json:"gender"`
	DOB            *string `json:"dob"`
	FatherName     *string `json:"fatherName" validate:"omitempty,max=100"`
	MotherName     *string `json:"motherName" validate:"omitempty,max=100"`
	MaritalStatus  *string `json:"maritalStatus" validate:"omitempty,max=50"`
}

type NidRequest struct {
	AadharNo   *string `json:"aadharNo" validate:"omitempty,len=12,numeric"`
	UANNo      *string `json:"uanNo" validate:"omitempty,max=20"`
	PANNo      *string `json:"panNo" validate:"omitempty,len=10,alphanum"`
	VoterID    *string `json:"voterId" validate:"omitempty,max=20"`
	PassportNo *string `json:"passportNo" validate:"omitempty,max=20"`
}

type BankAccountRequest struct {
	AccountNo *string `json:"accountNo" validate:"omitempty,max=50"`
	IFSC      *string `json:"ifsc" validate:"omitempty,len=11,alphanum"`
	Name      *string `json:"name" validate:"omitempty,max=100"`
}

type AddressRequest struct {
	InIndia        *bool  `json:"inIndia"`
	HouseNo        string `json:"houseNo" validate:"max=100"`
	Locality       string `json:"locality" validate:"max=100"`
	ResidencyName  string `json:"residencyName" validate:"max=100"`
	City           string `json:"city" validate:"max=100"`
	State          string `json:"state" validate:"max=100"`
	Pincode        string `json:"pincode" validate:"max=10"`
	Landmark       string `json:"landmark" validate:"max=100"`
	ResidingFrom   string `json:"residingFrom"`
	ResidencyProof string `json:"residencyProof" validate:"max=255"`
	IsCurrent      *bool  `json:"isCurrent"`
}

type EducationRequest struct {
	University  string `json:"university" validate:"max=100"`
	Degree      string `json:"degree" validate:"max=100"`
	Course      string `json:"course" validate:"max=100"`
	IDNumber    string `json:"idNumber" validate:"max=50"`
	Grade       string `json:"grade" validate:"max=100"`
	College     string `json:"college" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
	State       string `json:"state" validate:"max=100"`
	City        string `json:"city" validate:"max=100"`
	MarkSheet   string `json:"markSheet" validate:"max=255"`
	Certificate string `json:"certificateNumber" validate:"max=255"`
}

type EmploymentWrapper struct {
	Data []EmploymentRequest `json:"data" validate:"dive"`
}

type ManagerInfo struct {
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	EmployeeCode string `json:"employeeCode"`
	Department   string `json:"department"`
}

type EmploymentRequest struct {
	IsFresher        *bool        `json:"isFresher"`
	Company          string       `json:"company" validate:"max=100"`
	EmployeeCode     string       `json:"employeeCode" validate:"max=60"`
	Department       string       `json:"department" validate:"max=100"`
	Designation      string       `json:"designation" validate:"max=100"`
	EmployeeType     string       `json:"employeeType" validate:"max=100"`
	Manager          *ManagerInfo `json:"manager"`
	Band             string       `json:"band" validate:"max=60"`
	Salary           *float64     `json:"salary" validate:"omitempty,gte=0"`
	StartsFrom       string       `json:"startsFrom"`
	EndsAt           string       `json:"endsAt"`
	CurrentlyWorking *bool        `json:"currentlyWorking"`
	UAN              string       `json:"uan" validate:"max=20"`
	Phone            string       `json:"phone" validate:"max=20"`
	Email            string       `json:"email" validate:"omitempty,email"`
	Address          string       `json:"address" validate:"max=255"`
	City             string       `json:"city" validate:"max=100"`
	Remark           string       `json:"remark"`
}

type AadhaarOTPRequest struct {
	AadharNo string `json:"aadharNo" validate:"required,len=12,numeric"`
}

type AadhaarVerifyRequest struct {
	AadharNo    string `json:"aadharNo" validate:"required,len=12,numeric"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	ReferenceID string `json:"referenceId" validate:"required"`
}

type UpsertBankAccountRequest struct {
	AccountNo string `json:"accountNo" validate:"required,max=50"`
	IFSC      string `json:"ifsc" validate:"required,len=11,alphanum"`
	Name      string `json:"name" validate:"max=100"`
}

type ListCandidatesQuery struct {
	CompanyID uint   `query:"company_id"`
	Status    string `query:"status" validate:"omitempty,oneof=PENDING SUBMITTED IN_PROGRESS COMPLETED REJECTED"`
	Search    string `query:"search"`
	Page      int    `query:"page" validate:"omitempty,min=1"`
	PageSize  int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type CandidateDTO struct {
	ID               uint                     `json:"id"`
	CandidateCode    string                   `json:"candidate_code"`
	FirstName        string                   `json:"first_name"`
	MiddleName       string                   `json:"middle_name,omitempty"`
	LastName         string                   `json:"last_name,omitempty"`
	Gender           string                   `json:"gender,omitempty"`
	DOB              string                   `json:"dob,omitempty"`
	Phone            string                   `json:"phone"`
	Email            string                   `json:"email"`
	Status           verification.Status      `json:"status"`
	Score            int                      `json:"score"`
	CompanyID        uint                     `json:"company_id"`
	IdentityCheck    verification.CheckStatus `json:"identity_check"`
	EmploymentCheck  verification.CheckStatus `json:"employment_check"`
	CourtCheck       verification.CheckStatus `json:"court_check"`
	AMLCheck         verification.CheckStatus `json:"aml_check"`
	BankAccountCheck verification.CheckStatus `json:"bank_account_check"`
	CreatedAt        time.Time                `json:"created_at"`
}

type CandidateInsightsDTO struct {
	Total     int64                         `json:"total"`
	Pending   int64                         `json:"pending"`
	Completed int64                         `json:"completed"`
	ByStatus  map[verification.Status]int64 `json:"by_status"`
}

type CheckReportDTO struct {
	Kind      verification.CheckKind   `json:"kind"`
	Status    verification.CheckStatus `json:"status"`
	Score     *int                     `json:"score"`
	Data      map[string]any           `json:"data"`
	Apis      map[string]any           `json:"apis,omitempty"`
	UpdatedAt *time.Time               `json:"updated_at,omitempty"`
}

type CandidateReportDTO struct {
	CandidateID uint                `json:"candidate_id"`
	Status      verification.Status `json:"status"`
	Score       int                 `json:"score"`
	Checks      []CheckReportDTO    `json:"checks"`
}

type CheckOutcomeDTO struct {
	Kind     verification.CheckKind    `json:"kind"`
	Outcome  verification.OutcomeState `json:"outcome"`
	Verified bool                      `json:"verified"`
	Score    *int                      `json:"score,omitempty"`
	Reason   string                    `json:"reason,omitempty"`
}

type PipelineResultDTO struct {
	CandidateID uint                `json:"candidate_id"`
	Status      verification.Status `json:"status"`
	Score       int                 `json:"score"`
	Checks      []CheckOutcomeDTO   `json:"checks,omitempty"`
}

// NewPipelineResultDTO flattens a run result for the API.
func NewPipelineResultDTO(r *verification.RunResult) PipelineResultDTO {
	out := PipelineResultDTO{CandidateID: r.CandidateID, Status: r.Status, Score: r.Score}
	for _, o := range r.Outcomes {
		c := CheckOutcomeDTO{Kind: o.Kind, Outcome: o.State}
		if o.State == verification.OutcomeSucceeded {
			c.Verified = o.Evaluation.Verified
			c.Score = o.Evaluation.Score
		}
		if o.Reason != nil {
			c.Reason = o.Reason.Error()
		}
		out.Checks = append(out.Checks, c)
	}
	return out
}

func NewCandidateDTO(c *model.Candidate) CandidateDTO {
	out := CandidateDTO{
		ID:               c.ID,
		CandidateCode:    c.CandidateCode,
		FirstName:        c.FirstName,
		MiddleName:       c.MiddleName,
		LastName:         c.LastName,
		Gender:           string(c.Gender),
		Phone:            c.Phone,
		Email:            c.Email,
		Status:           c.Status(),
		Score:            c.Score,
		CompanyID:        c.CompanyID,
		IdentityCheck:    c.IdentityCheck,
		EmploymentCheck:  c.EmploymentCheck,
		CourtCheck:       c.CourtCheck,
		AMLCheck:         c.AMLCheck,
		BankAccountCheck: c.BankAccountCheck,
		CreatedAt:        c.CreatedAt,
	}
	if c.DOB != nil {
		out.DOB = c.DOB.Format("2006-01-02")
	}
	return out
}

func NewCandidateDTOs(cs []model.Candidate) []CandidateDTO {
	out := make([]CandidateDTO, 0, len(cs))
	for i := range cs {
		out = append(out, NewCandidateDTO(&cs[i]))
	}
	return out
}
