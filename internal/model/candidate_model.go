package model

import (
	"strings"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOthers Gender = "Others"
)

// ParseGender is lenient about case and accepts "other"; unknown values map to "".
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	case "other", "others":
		return GenderOthers
	}
	return ""
}

// Candidate is the aggregate root of the verification workflow. The five
// check fields are only written by the verification pipeline.
type Candidate struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CandidateCode  string     `gorm:"type:varchar(36);uniqueIndex" json:"candidate_code"`
	FirstName      string     `gorm:"type:varchar(100)" json:"first_name"`
	MiddleName     string     `gorm:"type:varchar(100)" json:"middle_name"`
	LastName       string     `gorm:"type:varchar(100)" json:"last_name"`
	Gender         Gender     `gorm:"type:varchar(10)" json:"gender"`
	DOB            *time.Time `gorm:"type:date" json:"dob"`
	FatherName     string     `gorm:"type:varchar(100)" json:"father_name"`
	MotherName     string     `gorm:"type:varchar(100)" json:"mother_name"`
	MaritalStatus  string     `gorm:"type:varchar(50)" json:"marital_status"`
	Phone          string     `gorm:"type:varchar(20)" json:"phone"`
	AlternatePhone string     `gorm:"type:varchar(20)" json:"alternate_phone"`
	Email          string     `gorm:"type:varchar(100);index" json:"email"`
	UAN            string     `gorm:"column:uan;type:varchar(20)" json:"uan"`
	AadharAddress  string     `gorm:"type:text" json:"aadhar_address"`
	AadharPincode  string     `gorm:"type:text" json:"aadhar_pincode"`
	Score          int        `gorm:"default:100" json:"score"`
	LastAction     string     `gorm:"type:varchar(100)" json:"last_action"`
	IsShadowed     bool       `gorm:"default:false" json:"-"`

	CompanyID            uint                `gorm:"index" json:"company_id"`
	VerificationStatusID *uint               `json:"-"`
	VerificationStatus   *VerificationStatus `json:"-"`

	IdentityCheck    verification.CheckStatus `gorm:"type:varchar(20);default:pending" json:"identity_check"`
	EmploymentCheck  verification.CheckStatus `gorm:"type:varchar(20);default:pending" json:"employment_check"`
	CourtCheck       verification.CheckStatus `gorm:"type:varchar(20);default:pending" json:"court_check"`
	AMLCheck         verification.CheckStatus `gorm:"column:aml_check;type:varchar(20);default:pending" json:"aml_check"`
	BankAccountCheck verification.CheckStatus `gorm:"type:varchar(20);default:pending" json:"bank_account_check"`

	Nid            *CandidateNid           `json:"nid,omitempty"`
	Addresses      []CandidateAddress      `json:"address,omitempty"`
	AadharDetails  *CandidateAadharDetails `json:"aadhar_details,omitempty"`
	Educations     []CandidateEducation    `json:"education,omitempty"`
	Employments    []CandidateEmployment   `json:"employment,omitempty"`
	BankAccount    *CandidateBankAccount   `json:"bank_account,omitempty"`
	Reports        []CheckReport           `json:"reports,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate gives the candidate a code when the caller did not set one.
func (c *Candidate) BeforeCreate(*gorm.DB) error {
	if c.CandidateCode == "" {
		c.CandidateCode = uuid.NewString()
	}
	return nil
}

// Status returns the overall verification status, PENDING when unset.
func (c *Candidate) Status() verification.Status {
	if c.VerificationStatus == nil {
		return verification.StatusPending
	}
	return verification.NormalizeStatus(c.VerificationStatus.Name)
}

func (c *Candidate) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// CheckStatus returns the candidate field that tracks kind.
func (c *Candidate) CheckStatus(kind verification.CheckKind) verification.CheckStatus {
	switch kind {
	case verification.CheckIdentity:
		return c.IdentityCheck
	case verification.CheckEmployment:
		return c.EmploymentCheck
	case verification.CheckCourt:
		return c.CourtCheck
	case verification.CheckAML:
		return c.AMLCheck
	case verification.CheckBankAccount:
		return c.BankAccountCheck
	}
	return ""
}

func (c *Candidate) SetCheckStatus(kind verification.CheckKind, status verification.CheckStatus) {
	switch kind {
	case verification.CheckIdentity:
		c.IdentityCheck = status
	case verification.CheckEmployment:
		c.EmploymentCheck = status
	case verification.CheckCourt:
		c.CourtCheck = status
	case verification.CheckAML:
		c.AMLCheck = status
	case verification.CheckBankAccount:
		c.BankAccountCheck = status
	}
}

// CheckColumn is the candidates table column backing kind's check status.
func CheckColumn(kind verification.CheckKind) string {
	switch kind {
	case verification.CheckIdentity:
		return "identity_check"
	case verification.CheckEmployment:
		return "employment_check"
	case verification.CheckCourt:
		return "court_check"
	case verification.CheckAML:
		return "aml_check"
	case verification.CheckBankAccount:
		return "bank_account_check"
	}
	return ""
}

// CurrentAddress prefers the address flagged current, else the first one.
func (c *Candidate) CurrentAddress() *CandidateAddress {
	for i := range c.Addresses {
		if c.Addresses[i].IsCurrent != nil && *c.Addresses[i].IsCurrent {
			return &c.Addresses[i]
		}
	}
	if len(c.Addresses) > 0 {
		return &c.Addresses[0]
	}
	return nil
}

type CandidateNid struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CandidateID uint      `gorm:"uniqueIndex" json:"candidate_id"`
	Photo       string    `gorm:"type:varchar(255)" json:"photo"`
	AadharNo    string    `gorm:"type:varchar(20)" json:"aadhar_no"`
	UANNo       string    `gorm:"column:uan_no;type:varchar(20)" json:"uan_no"`
	PANNo       string    `gorm:"column:pan_no;type:varchar(20)" json:"pan_no"`
	PassportNo  string    `gorm:"type:varchar(20)" json:"passport_no"`
	VoterID     string    `gorm:"type:varchar(20)" json:"voter_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CandidateAddress struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CandidateID    uint       `gorm:"index" json:"candidate_id"`
	InIndia        *bool      `json:"in_india"`
	HouseNo        string     `gorm:"type:varchar(100)" json:"house_no"`
	Locality       string     `gorm:"type:varchar(100)" json:"locality"`
	ResidencyName  string     `gorm:"type:varchar(100)" json:"residency_name"`
	City           string     `gorm:"type:varchar(100)" json:"city"`
	State          string     `gorm:"type:varchar(100)" json:"state"`
	Pincode        string     `gorm:"type:varchar(10)" json:"pincode"`
	Landmark       string     `gorm:"type:varchar(100)" json:"landmark"`
	ResidingFrom   *time.Time `gorm:"type:date" json:"residing_from"`
	ResidencyProof string     `gorm:"type:varchar(255)" json:"residency_proof"`
	IsCurrent      *bool      `json:"is_current"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Line joins the non-empty address parts with spaces.
func (a *CandidateAddress) Line() string {
	parts := make([]string, 0, 7)
	for _, p := range []string{a.HouseNo, a.Locality, a.ResidencyName, a.City, a.State, a.Pincode, a.Landmark} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// CandidateAadharDetails stores what the Aadhaar OTP verification returned.
type CandidateAadharDetails struct {
	CandidateID uint   `gorm:"primaryKey;autoIncrement:false" json:"candidate_id"`
	Address     string `gorm:"type:text" json:"address"`
	Pincode     string `gorm:"type:text" json:"pincode"`
	Name        string `gorm:"type:text" json:"name"`
	Gender      string `gorm:"type:text" json:"gender"`
	DOB         string `gorm:"column:dob;type:text" json:"dob"`
	FatherName  string `gorm:"type:text" json:"father_name"`
}

type CandidateEducation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CandidateID uint      `gorm:"index" json:"candidate_id"`
	University  string    `gorm:"type:varchar(100)" json:"university"`
	Degree      string    `gorm:"type:varchar(100)" json:"degree"`
	Course      string    `gorm:"type:varchar(100)" json:"course"`
	IDNumber    string    `gorm:"column:id_number;type:varchar(50)" json:"id_number"`
	Grade       string    `gorm:"type:varchar(100)" json:"grade"`
	College     string    `gorm:"type:varchar(100)" json:"college"`
	Country     string    `gorm:"type:varchar(100)" json:"country"`
	State       string    `gorm:"type:varchar(100)" json:"state"`
	City        string    `gorm:"type:varchar(100)" json:"city"`
	MarkSheet   string    `gorm:"type:varchar(255)" json:"mark_sheet"`
	Certificate string    `gorm:"type:varchar(255)" json:"certificate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CandidateEmployment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CandidateID      uint       `gorm:"index" json:"candidate_id"`
	IsFresher        *bool      `json:"is_fresher"`
	Company          string     `gorm:"type:varchar(100)" json:"company"`
	Designation      string     `gorm:"type:varchar(100)" json:"designation"`
	City             string     `gorm:"type:varchar(100)" json:"city"`
	Phone            string     `gorm:"type:varchar(20)" json:"phone"`
	Email            string     `gorm:"type:varchar(100)" json:"email"`
	Address          string     `gorm:"type:varchar(255)" json:"address"`
	EmployeeType     string     `gorm:"type:varchar(100)" json:"employee_type"`
	Department       string     `gorm:"type:varchar(100)" json:"department"`
	StartsFrom       *time.Time `gorm:"type:date" json:"starts_from"`
	EndsAt           *time.Time `gorm:"type:date" json:"ends_at"`
	CurrentlyWorking *bool      `json:"currently_working"`
	Salary           *float64   `json:"salary"`
	UAN              string     `gorm:"column:uan;type:varchar(20)" json:"uan"`
	EmployeeCode     string     `gorm:"type:varchar(60)" json:"employee_code"`
	Band             string     `gorm:"type:varchar(60)" json:"band"`
	Remark           string     `gorm:"type:text" json:"remark"`
	Manager          string     `gorm:"type:text" json:"manager"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type CandidateBankAccount struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CandidateID uint      `gorm:"uniqueIndex" json:"candidate_id"`
	AccountNo   string    `gorm:"type:varchar(50)" json:"account_no"`
	IFSC        string    `gorm:"column:ifsc;type:varchar(50)" json:"ifsc"`
	Name        string    `gorm:"type:varchar(100)" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *CandidateAddress) AssignCandidate(id uint)    { a.CandidateID = id }
func (e *CandidateEducation) AssignCandidate(id uint)  { e.CandidateID = id }
func (e *CandidateEmployment) AssignCandidate(id uint) { e.CandidateID = id }
