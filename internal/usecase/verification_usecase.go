package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/bgv-backend/internal/config"
	"github.com/fadilmartias/bgv-backend/internal/metrics"
	"github.com/fadilmartias/bgv-backend/internal/model"
	"github.com/fadilmartias/bgv-backend/internal/repository"
	"github.com/fadilmartias/bgv-backend/internal/service"
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// VerificationServices groups the provider clients the pipeline calls.
type VerificationServices struct {
	Identity   service.IdentityServiceInterface
	Employment service.EmploymentServiceInterface
	Court      service.CourtServiceInterface
	AML        service.AMLServiceInterface
	Bank       service.BankServiceInterface
}

// VerificationUsecase runs the background verification pipeline. Provider
// calls happen outside any transaction; their results are committed together
// at the end of a run. Work on one candidate is serialized.
type VerificationUsecase struct {
	transactor    *repository.Transactor
	candidateRepo *repository.CandidateRepository
	reportRepo    *repository.CheckReportRepository
	statusRepo    *repository.VerificationStatusRepository
	services      VerificationServices
	metrics       *metrics.PipelineMetrics
	logger        *zap.Logger
	concurrency   int
	locks         *candidateLocks
}

func NewVerificationUsecase(
	transactor *repository.Transactor,
	candidateRepo *repository.CandidateRepository,
	reportRepo *repository.CheckReportRepository,
	statusRepo *repository.VerificationStatusRepository,
	services VerificationServices,
	cfg *config.PipelineConfig,
	m *metrics.PipelineMetrics,
	logger *zap.Logger,
) *VerificationUsecase {
	concurrency := cfg.ConcurrentChecks
	if concurrency <= 0 {
		concurrency = len(verification.AllChecks)
	}
	return &VerificationUsecase{
		transactor:    transactor,
		candidateRepo: candidateRepo,
		reportRepo:    reportRepo,
		statusRepo:    statusRepo,
		services:      services,
		metrics:       m,
		logger:        logger.Named("verification"),
		concurrency:   concurrency,
		locks:         newCandidateLocks(),
	}
}

// Submit marks the candidate SUBMITTED and runs the full pipeline. A
// candidate left IN_PROGRESS by an earlier run is resumed as is.
func (uc *VerificationUsecase) Submit(ctx context.Context, candidateID uint) (*verification.RunResult, error) {
	release, err := uc.locks.acquire(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := uc.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c.Status() != verification.StatusInProgress {
		if err := uc.setStatus(ctx, c, verification.StatusSubmitted); err != nil {
			return nil, err
		}
	}
	return uc.runFull(ctx, c)
}

// RunFullPipeline runs every check and moves the candidate to COMPLETED,
// whatever the individual checks returned. Only a failure to commit the
// results is reported as an error.
func (uc *VerificationUsecase) RunFullPipeline(ctx context.Context, candidateID uint) (*verification.RunResult, error) {
	release, err := uc.locks.acquire(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := uc.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return uc.runFull(ctx, c)
}

func (uc *VerificationUsecase) runFull(ctx context.Context, c *model.Candidate) (result *verification.RunResult, err error) {
	defer func() { uc.metrics.RecordRun("full", err) }()

	// refuse terminal candidates before spending any provider calls
	if _, err := verification.Transition(c.Status(), verification.StatusCompleted); err != nil {
		return nil, fmt.Errorf("candidate %d: %w", c.ID, err)
	}
	if err := uc.setStatus(ctx, c, verification.StatusInProgress); err != nil {
		return nil, err
	}

	outcomes := uc.callPhase(ctx, c, verification.AllChecks)
	return uc.commit(ctx, c, outcomes, true)
}

// RunSingleCheck re-runs one check. Only that check's report and status
// field are written; the overall status and score are left alone.
func (uc *VerificationUsecase) RunSingleCheck(ctx context.Context, candidateID uint, kind verification.CheckKind) (result *verification.RunResult, err error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", verification.ErrUnknownCheck, kind)
	}
	release, err := uc.locks.acquire(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	defer release()
	defer func() { uc.metrics.RecordRun("single", err) }()

	c, err := uc.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	outcomes := uc.callPhase(ctx, c, []verification.CheckKind{kind})
	return uc.commit(ctx, c, outcomes, false)
}

// Approve is the administrative override: every check is marked verified,
// missing reports are created with the default score and the candidate is
// completed without calling any provider.
func (uc *VerificationUsecase) Approve(ctx context.Context, candidateID uint) (*verification.RunResult, error) {
	release, err := uc.locks.acquire(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := uc.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	to, err := verification.Transition(c.Status(), verification.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("candidate %d: %w", c.ID, err)
	}

	var score int
	err = uc.transactor.Do(ctx, func(tx *gorm.DB) error {
		reports := uc.reportRepo.WithTx(tx)
		existing, err := reports.FindByCandidate(ctx, c.ID)
		if err != nil {
			return err
		}
		columns := map[string]any{}
		for _, kind := range verification.AllChecks {
			columns[model.CheckColumn(kind)] = verification.CheckVerified
			if _, ok := existing[kind]; ok {
				continue
			}
			report := &model.CheckReport{CandidateID: c.ID, Kind: kind, Score: verification.IntPtr(verification.DefaultScore)}
			report.MergeApis(nil)
			report.MergeData(nil)
			if err := reports.Save(ctx, report); err != nil {
				return err
			}
			existing[kind] = report
		}
		score = verification.AggregateScore(scoresOf(existing))
		return uc.finish(ctx, tx, c.ID, to, score, columns)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: approve candidate %d: %w", verification.ErrPersistenceFailure, c.ID, err)
	}

	uc.logger.Info("candidate approved", zap.Uint("candidate_id", c.ID), zap.Int("score", score))
	return &verification.RunResult{CandidateID: c.ID, Status: to, Score: score}, nil
}

// Reject moves a candidate that has not completed to REJECTED.
func (uc *VerificationUsecase) Reject(ctx context.Context, candidateID uint) (*verification.RunResult, error) {
	release, err := uc.locks.acquire(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	defer release()

	c, err := uc.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if err := uc.setStatus(ctx, c, verification.StatusRejected); err != nil {
		return nil, err
	}
	uc.logger.Info("candidate rejected", zap.Uint("candidate_id", c.ID))
	return &verification.RunResult{CandidateID: c.ID, Status: verification.StatusRejected, Score: c.Score}, nil
}

// setStatus validates and persists a status change on its own.
func (uc *VerificationUsecase) setStatus(ctx context.Context, c *model.Candidate, target verification.Status) error {
	to, err := verification.Transition(c.Status(), target)
	if err != nil {
		return fmt.Errorf("candidate %d: %w", c.ID, err)
	}
	row, err := uc.statusRepo.FindByName(ctx, to)
	if err != nil {
		return fmt.Errorf("%w: load status %s: %w", verification.ErrPersistenceFailure, to, err)
	}
	if err := uc.candidateRepo.UpdateColumns(ctx, c.ID, map[string]any{"verification_status_id": row.ID}); err != nil {
		return fmt.Errorf("%w: set status %s: %w", verification.ErrPersistenceFailure, to, err)
	}
	c.VerificationStatusID = &row.ID
	c.VerificationStatus = row
	return nil
}

func (uc *VerificationUsecase) callPhase(ctx context.Context, c *model.Candidate, kinds []verification.CheckKind) []verification.Outcome {
	outcomes := make([]verification.Outcome, len(kinds))
	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			outcomes[i] = uc.runCheck(ctx, c, kind)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// runCheck never fails: errors and panics become the check's outcome.
func (uc *VerificationUsecase) runCheck(ctx context.Context, c *model.Candidate, kind verification.CheckKind) (out verification.Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = verification.Failed(kind, fmt.Errorf("check panicked: %v", r))
		}
		out.Duration = time.Since(start)
		uc.metrics.RecordOutcome(out)
		uc.logOutcome(c.ID, out)
	}()

	switch kind {
	case verification.CheckIdentity:
		return uc.checkIdentity(ctx, c)
	case verification.CheckEmployment:
		return uc.checkEmployment(ctx, c)
	case verification.CheckCourt:
		return uc.checkCourt(ctx, c)
	case verification.CheckAML:
		return uc.checkAML(ctx, c)
	case verification.CheckBankAccount:
		return uc.checkBank(ctx, c)
	}
	return verification.Failed(kind, fmt.Errorf("%w: %q", verification.ErrUnknownCheck, kind))
}

func (uc *VerificationUsecase) logOutcome(candidateID uint, o verification.Outcome) {
	fields := []zap.Field{
		zap.Uint("candidate_id", candidateID),
		zap.String("check", string(o.Kind)),
		zap.String("outcome", string(o.State)),
		zap.Duration("duration", o.Duration),
	}
	switch o.State {
	case verification.OutcomeFailed:
		uc.logger.Warn("verification check failed", append(fields, zap.Error(o.Reason))...)
	case verification.OutcomeSkipped:
		uc.logger.Info("verification check skipped", append(fields, zap.Error(o.Reason))...)
	default:
		uc.logger.Info("verification check finished", append(fields, zap.Bool("verified", o.Evaluation.Verified))...)
	}
}

// commit writes succeeded outcomes in one transaction. When complete is set
// it also recomputes the score and moves the candidate to COMPLETED.
func (uc *VerificationUsecase) commit(ctx context.Context, c *model.Candidate, outcomes []verification.Outcome, complete bool) (*verification.RunResult, error) {
	result := &verification.RunResult{
		CandidateID: c.ID,
		Status:      c.Status(),
		Score:       c.Score,
		Outcomes:    outcomes,
	}

	err := uc.transactor.Do(ctx, func(tx *gorm.DB) error {
		candidates := uc.candidateRepo.WithTx(tx)
		reports := uc.reportRepo.WithTx(tx)

		columns := map[string]any{}
		for _, o := range outcomes {
			if o.State != verification.OutcomeSucceeded {
				continue
			}
			if err := writeReport(ctx, reports, c.ID, o); err != nil {
				return fmt.Errorf("write %s report: %w", o.Kind, err)
			}
			columns[model.CheckColumn(o.Kind)] = o.Evaluation.CheckStatus()
			if o.ResolvedUAN != "" {
				columns["uan"] = o.ResolvedUAN
			}
			if o.BeneficiaryName != "" {
				if err := candidates.UpdateBankAccountName(ctx, c.ID, o.BeneficiaryName); err != nil {
					return fmt.Errorf("write beneficiary name: %w", err)
				}
			}
		}

		if !complete {
			if len(columns) == 0 {
				return nil
			}
			return candidates.UpdateColumns(ctx, c.ID, columns)
		}

		to, err := verification.Transition(c.Status(), verification.StatusCompleted)
		if err != nil {
			return err
		}
		byKind, err := reports.FindByCandidate(ctx, c.ID)
		if err != nil {
			return err
		}
		result.Score = verification.AggregateScore(scoresOf(byKind))
		result.Status = to
		return uc.finish(ctx, tx, c.ID, to, result.Score, columns)
	})
	if err != nil {
		if errors.Is(err, verification.ErrInvalidTransition) {
			return nil, fmt.Errorf("candidate %d: %w", c.ID, err)
		}
		uc.logger.Error("verification results not persisted", zap.Uint("candidate_id", c.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: candidate %d: %w", verification.ErrPersistenceFailure, c.ID, err)
	}

	uc.logger.Info("verification results committed",
		zap.Uint("candidate_id", c.ID),
		zap.String("status", string(result.Status)),
		zap.Int("score", result.Score))
	return result, nil
}

// finish sets score and overall status along with any pending column writes.
func (uc *VerificationUsecase) finish(ctx context.Context, tx *gorm.DB, candidateID uint, to verification.Status, score int, columns map[string]any) error {
	row, err := uc.statusRepo.WithTx(tx).FindByName(ctx, to)
	if err != nil {
		return fmt.Errorf("load status %s: %w", to, err)
	}
	columns["verification_status_id"] = row.ID
	columns["score"] = score
	return uc.candidateRepo.WithTx(tx).UpdateColumns(ctx, candidateID, columns)
}

func writeReport(ctx context.Context, reports *repository.CheckReportRepository, candidateID uint, o verification.Outcome) error {
	report, err := reports.FindByCandidateAndKind(ctx, candidateID, o.Kind)
	if errors.Is(err, repository.ErrNotFound) {
		report = &model.CheckReport{CandidateID: candidateID, Kind: o.Kind}
	} else if err != nil {
		return err
	}
	report.MergeApis(o.Apis)
	report.MergeData(o.Evaluation.Data)
	if o.Evaluation.Score != nil {
		report.Score = o.Evaluation.Score
	}
	return reports.Save(ctx, report)
}

func scoresOf(reports map[verification.CheckKind]*model.CheckReport) map[verification.CheckKind]*int {
	scores := make(map[verification.CheckKind]*int, len(reports))
	for kind, r := range reports {
		scores[kind] = r.Score
	}
	return scores
}
