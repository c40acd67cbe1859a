package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/config"
	"github.com/fadilmartias/bgv-backend/internal/dto"
	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/response"
	"github.com/fadilmartias/bgv-backend/internal/service"
	"github.com/fadilmartias/bgv-backend/internal/util"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type CandidateUsecase struct {
	transactor    *repository.Transactor
	candidateRepo *repository.CandidateRepository
	companyRepo   *repository.CompanyRepository
	statusRepo    *repository.VerificationStatusRepository
	identity      service.IdentityServiceInterface
	verifier      *VerificationUsecase
	otps          *cache.Cache
	logger        *zap.Logger
}

// pendingOTP is what SendAadhaarOTP remembers until the OTP is verified.
type pendingOTP struct {
	AadharNo    string
	ReferenceID string
}

func NewCandidateUsecase(
	transactor *repository.Transactor,
	candidateRepo *repository.CandidateRepository,
	companyRepo *repository.CompanyRepository,
	statusRepo *repository.VerificationStatusRepository,
	identity service.IdentityServiceInterface,
	verifier *VerificationUsecase,
	cfg *config.PipelineConfig,
	logger *zap.Logger,
) *CandidateUsecase {
	ttl := cfg.AadhaarOTPTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CandidateUsecase{
		transactor:    transactor,
		candidateRepo: candidateRepo,
		companyRepo:   companyRepo,
		statusRepo:    statusRepo,
		identity:      identity,
		verifier:      verifier,
		otps:          cache.New(ttl, 2*ttl),
		logger:        logger.Named("candidate"),
	}
}

func (uc *CandidateUsecase) AddCandidate(ctx context.Context, req dto.CreateCandidateRequest) (*model.Candidate, error) {
	if _, err := uc.companyRepo.FindByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrCompanyNotFound
		}
		return nil, err
	}
	email := strings.TrimSpace(req.Email)
	exists, err := uc.candidateRepo.ExistsByEmail(ctx, req.CompanyID, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateEmail
	}
	pending, err := uc.statusRepo.FindByName(ctx, verification.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("load pending status: %w", err)
	}

	c := &model.Candidate{
		CandidateCode:        uuid.NewString(),
		FirstName:            strings.TrimSpace(req.FirstName),
		MiddleName:           strings.TrimSpace(req.MiddleName),
		LastName:             strings.TrimSpace(req.LastName),
		Gender:               model.ParseGender(req.Gender),
		DOB:                  parseDate(req.DOB),
		FatherName:           req.FatherName,
		MotherName:           req.MotherName,
		MaritalStatus:        req.MaritalStatus,
		Phone:                req.Phone,
		AlternatePhone:       req.AlternatePhone,
		Email:                email,
		Score:                verification.DefaultScore,
		CompanyID:            req.CompanyID,
		VerificationStatusID: &pending.ID,
	}
	for _, kind := range verification.AllChecks {
		c.SetCheckStatus(kind, verification.CheckPending)
	}
	if err := uc.candidateRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	c.VerificationStatus = pending

	uc.logger.Info("candidate added", zap.Uint("candidate_id", c.ID), zap.Uint("company_id", c.CompanyID))
	return c, nil
}

func (uc *CandidateUsecase) ListCandidates(ctx context.Context, q dto.ListCandidatesQuery) ([]model.Candidate, *response.Pagination, error) {
	page, size := response.NormalizePage(q.Page, q.PageSize)
	items, total, err := uc.candidateRepo.List(ctx, repository.CandidateFilter{
		CompanyID: q.CompanyID,
		Status:    verification.Status(q.Status),
		Search:    q.Search,
		Page:      page,
		PageSize:  size,
	})
	if err != nil {
		return nil, nil, err
	}
	return items, response.NewPagination(page, size, total), nil
}

func (uc *CandidateUsecase) GetCandidate(ctx context.Context, id uint) (*model.Candidate, error) {
	return uc.candidateRepo.FindByID(ctx, id)
}

func (uc *CandidateUsecase) Insights(ctx context.Context, companyID uint) (*dto.CandidateInsightsDTO, error) {
	counts, err := uc.candidateRepo.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.CandidateInsightsDTO{
		Pending:   counts[verification.StatusPending],
		Completed: counts[verification.StatusCompleted],
		ByStatus:  counts,
	}
	for _, n := range counts {
		out.Total += n
	}
	return out, nil
}

// GetReport lists every check with its stored report, if any.
func (uc *CandidateUsecase) GetReport(ctx context.Context, id uint) (*dto.CandidateReportDTO, error) {
	c, err := uc.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	byKind := make(map[verification.CheckKind]*model.CheckReport, len(c.Reports))
	for i := range c.Reports {
		byKind[c.Reports[i].Kind] = &c.Reports[i]
	}

	out := &dto.CandidateReportDTO{CandidateID: c.ID, Status: c.Status(), Score: c.Score}
	for _, kind := range verification.AllChecks {
		check := dto.CheckReportDTO{Kind: kind, Status: c.CheckStatus(kind), Data: map[string]any{}}
		if r, ok := byKind[kind]; ok {
			check.Score = r.Score
			check.Data = r.Data
			check.Apis = r.Apis
			updated := r.UpdatedAt
			check.UpdatedAt = &updated
		}
		out.Checks = append(out.Checks, check)
	}
	return out, nil
}

// UpdateCandidate saves profile changes in one transaction and, when
// req.Verify is set, submits the candidate for verification afterwards.
func (uc *CandidateUsecase) UpdateCandidate(ctx context.Context, id uint, req dto.UpdateCandidateRequest) (*model.Candidate, *verification.RunResult, error) {
	c, err := uc.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	columns := personalColumns(req)
	if email, ok := columns["email"].(string); ok && !strings.EqualFold(email, c.Email) {
		exists, err := uc.candidateRepo.ExistsByEmail(ctx, c.CompanyID, email)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return nil, nil, util.ErrDuplicateEmail
		}
	}

	err = uc.transactor.Do(ctx, func(tx *gorm.DB) error {
		candidates := uc.candidateRepo.WithTx(tx)
		if len(columns) > 0 {
			if err := candidates.UpdateColumns(ctx, c.ID, columns); err != nil {
				return err
			}
		}
		if req.Nid != nil {
			if err := candidates.SaveNid(ctx, applyNid(c.ID, c.Nid, req.Nid)); err != nil {
				return fmt.Errorf("save nid: %w", err)
			}
		}
		if req.BankAccount != nil {
			if err := candidates.SaveBankAccount(ctx, applyBankAccount(c.ID, c.BankAccount, req.BankAccount)); err != nil {
				return fmt.Errorf("save bank account: %w", err)
			}
		}
		if req.Address != nil {
			if err := candidates.ReplaceAddresses(ctx, c.ID, toAddresses(c.ID, req.Address)); err != nil {
				return fmt.Errorf("save addresses: %w", err)
			}
		}
		if req.Education != nil {
			if err := candidates.ReplaceEducations(ctx, c.ID, toEducations(c.ID, req.Education)); err != nil {
				return fmt.Errorf("save education: %w", err)
			}
		}
		if req.Employment != nil {
			if err := candidates.ReplaceEmployments(ctx, c.ID, toEmployments(c.ID, req.Employment.Data)); err != nil {
				return fmt.Errorf("save employment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var result *verification.RunResult
	if req.Verify {
		result, err = uc.verifier.Submit(ctx, c.ID)
		if err != nil {
			return nil, nil, err
		}
	}

	updated, err := uc.candidateRepo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, result, nil
}

func (uc *CandidateUsecase) UpsertBankAccount(ctx context.Context, id uint, req dto.UpsertBankAccountRequest) (*model.CandidateBankAccount, error) {
	c, err := uc.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account := applyBankAccount(c.ID, c.BankAccount, &dto.BankAccountRequest{
		AccountNo: &req.AccountNo,
		IFSC:      &req.IFSC,
		Name:      &req.Name,
	})
	if err := uc.candidateRepo.SaveBankAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SendAadhaarOTP starts the Aadhaar OTP flow and returns the provider's
// reference id. The request is remembered for the configured TTL.
func (uc *CandidateUsecase) SendAadhaarOTP(ctx context.Context, id uint, req dto.AadhaarOTPRequest) (string, error) {
	if _, err := uc.candidateRepo.FindByID(ctx, id); err != nil {
		return "", err
	}
	payload, err := uc.identity.SendAadhaarOTP(ctx, req.AadharNo)
	if err != nil {
		return "", err
	}
	ref := firstNonEmpty(payload, "reference_id", "referenceId", "data.reference_id", "data.referenceId")
	if ref == "" {
		return "", fmt.Errorf("otp response has no reference id: %w", verification.ErrProviderRejected)
	}
	uc.otps.SetDefault(otpKey(id), pendingOTP{AadharNo: req.AadharNo, ReferenceID: ref})
	return ref, nil
}

// VerifyAadhaarOTP completes the OTP flow and stores the Aadhaar details,
// which later count as identity proof in the pipeline.
func (uc *CandidateUsecase) VerifyAadhaarOTP(ctx context.Context, id uint, req dto.AadhaarVerifyRequest) (*model.CandidateAadharDetails, error) {
	cached, ok := uc.otps.Get(otpKey(id))
	if !ok {
		return nil, util.ErrOTPNotRequested
	}
	pending := cached.(pendingOTP)
	if pending.AadharNo != req.AadharNo || pending.ReferenceID != req.ReferenceID {
		return nil, util.ErrAadhaarMismatch
	}
	c, err := uc.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := uc.identity.VerifyAadhaarOTP(ctx, req.ReferenceID, req.OTP)
	if err != nil {
		return nil, err
	}
	details := &model.CandidateAadharDetails{
		CandidateID: c.ID,
		Name:        firstNonEmpty(payload, "name", "data.name"),
		Address:     firstNonEmpty(payload, "address", "data.address", "data.full_address"),
		Pincode:     firstNonEmpty(payload, "pincode", "data.pincode", "data.zip"),
		Gender:      firstNonEmpty(payload, "gender", "data.gender"),
		DOB:         firstNonEmpty(payload, "dob", "data.dob", "data.date_of_birth"),
		FatherName:  firstNonEmpty(payload, "father_name", "data.father_name", "data.care_of"),
	}
	if details.Name == "" {
		return nil, fmt.Errorf("aadhaar response has no name: %w", verification.ErrProviderRejected)
	}

	err = uc.transactor.Do(ctx, func(tx *gorm.DB) error {
		candidates := uc.candidateRepo.WithTx(tx)
		if err := candidates.SaveAadharDetails(ctx, details); err != nil {
			return err
		}
		aadhar := req.AadharNo
		if err := candidates.SaveNid(ctx, applyNid(c.ID, c.Nid, &dto.NidRequest{AadharNo: &aadhar})); err != nil {
			return err
		}
		return candidates.UpdateColumns(ctx, c.ID, map[string]any{
			"aadhar_address": details.Address,
			"aadhar_pincode": details.Pincode,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.otps.Delete(otpKey(id))
	uc.logger.Info("aadhaar verified", zap.Uint("candidate_id", c.ID))
	return details, nil
}

func otpKey(id uint) string {
	return "aadhaar_otp:" + strconv.FormatUint(uint64(id), 10)
}

func firstNonEmpty(p verification.Payload, paths ...string) string {
	for _, path := range paths {
		if s := strings.TrimSpace(p.Get(path).String()); s != "" {
			return s
		}
	}
	return ""
}

// parseDate returns nil for empty or unparsable input.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// personalColumns collects the personal-data columns a request changes.
// Top-level fields win over their meta counterparts.
func personalColumns(req dto.UpdateCandidateRequest) map[string]any {
	cols := map[string]any{}
	setIf := func(col string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			cols[col] = v
		}
	}
	if m := req.Meta; m != nil {
		setIf("first_name", m.FirstName)
		setIf("middle_name", m.MiddleName)
		setIf("last_name", m.LastName)
		setIf("phone", m.Phone)
		setIf("email", m.Email)
		setIf("alternate_phone", m.AlternatePhone)
		if m.Gender != nil {
			cols["gender"] = model.ParseGender(*m.Gender)
		}
		if m.DOB != nil {
			cols["dob"] = parseDate(*m.DOB)
		}
		if m.FatherName != nil {
			cols["father_name"] = *m.FatherName
		}
		if m.MotherName != nil {
			cols["mother_name"] = *m.MotherName
		}
		if m.MaritalStatus != nil {
			cols["marital_status"] = *m.MaritalStatus
		}
	}

	for col, v := range map[string]*string{
		"first_name":      req.FirstName,
		"middle_name":     req.MiddleName,
		"last_name":       req.LastName,
		"father_name":     req.FatherName,
		"mother_name":     req.MotherName,
		"marital_status":  req.MaritalStatus,
		"phone":           req.Phone,
		"alternate_phone": req.AlternatePhone,
		"email":           req.Email,
	} {
		if v != nil {
			cols[col] = strings.TrimSpace(*v)
		}
	}
	if req.Gender != nil {
		cols["gender"] = model.ParseGender(*req.Gender)
	}
	if req.DOB != nil {
		cols["dob"] = parseDate(*req.DOB)
	}
	return cols
}

func applyNid(candidateID uint, existing *model.CandidateNid, req *dto.NidRequest) *model.CandidateNid {
	nid := &model.CandidateNid{CandidateID: candidateID}
	if existing != nil {
		copied := *existing
		nid = &copied
	}
	setString(&nid.AadharNo, req.AadharNo)
	setString(&nid.UANNo, req.UANNo)
	setString(&nid.PANNo, req.PANNo)
	setString(&nid.VoterID, req.VoterID)
	setString(&nid.PassportNo, req.PassportNo)
	nid.PANNo = strings.ToUpper(nid.PANNo)
	return nid
}

func applyBankAccount(candidateID uint, existing *model.CandidateBankAccount, req *dto.BankAccountRequest) *model.CandidateBankAccount {
	account := &model.CandidateBankAccount{CandidateID: candidateID}
	if existing != nil {
		copied := *existing
		account = &copied
	}
	setString(&account.AccountNo, req.AccountNo)
	setString(&account.IFSC, req.IFSC)
	setString(&account.Name, req.Name)
	account.IFSC = strings.ToUpper(account.IFSC)
	return account
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func toAddresses(candidateID uint, in []dto.AddressRequest) []model.CandidateAddress {
	out := make([]model.CandidateAddress, 0, len(in))
	for _, a := range in {
		out = append(out, model.CandidateAddress{
			CandidateID:    candidateID,
			InIndia:        a.InIndia,
			HouseNo:        a.HouseNo,
			Locality:       a.Locality,
			ResidencyName:  a.ResidencyName,
			City:           a.City,
			State:          a.State,
			Pincode:        a.Pincode,
			Landmark:       a.Landmark,
			ResidingFrom:   parseDate(a.ResidingFrom),
			ResidencyProof: a.ResidencyProof,
			IsCurrent:      a.IsCurrent,
		})
	}
	return out
}

func toEducations(candidateID uint, in []dto.EducationRequest) []model.CandidateEducation {
	out := make([]model.CandidateEducation, 0, len(in))
	for _, e := range in {
		out = append(out, model.CandidateEducation{
			CandidateID: candidateID,
			University:  e.University,
			Degree:      e.Degree,
			Course:      e.Course,
			IDNumber:    e.IDNumber,
			Grade:       e.Grade,
			College:     e.College,
			Country:     e.Country,
			State:       e.State,
			City:        e.City,
			MarkSheet:   e.MarkSheet,
			Certificate: e.Certificate,
		})
	}
	return out
}

func toEmployments(candidateID uint, in []dto.EmploymentRequest) []model.CandidateEmployment {
	out := make([]model.CandidateEmployment, 0, len(in))
	for _, e := range in {
		emp := model.CandidateEmployment{
			CandidateID:      candidateID,
			IsFresher:        e.IsFresher,
			Company:          e.Company,
			Designation:      e.Designation,
			City:             e.City,
			Phone:            e.Phone,
			Email:            e.Email,
			Address:          e.Address,
			EmployeeType:     e.EmployeeType,
			Department:       e.Department,
			StartsFrom:       parseDate(e.StartsFrom),
			EndsAt:           parseDate(e.EndsAt),
			CurrentlyWorking: e.CurrentlyWorking,
			Salary:           e.Salary,
			UAN:              e.UAN,
			EmployeeCode:     e.EmployeeCode,
			Band:             e.Band,
			Remark:           e.Remark,
		}
		if m := e.Manager; m != nil {
			emp.Manager = strings.Join(strings.Fields(strings.Join([]string{m.FirstName, m.MiddleName, m.LastName}, " ")), " ")
		}
		out = append(out, emp)
	}
	return out
}
