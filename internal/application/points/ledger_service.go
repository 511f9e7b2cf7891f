package points

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/activity"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/points"
	"github.com/zona2/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier delivers notifications for point awards. Delivery is best effort:
// implementations log failures instead of surfacing them, so an award never
// fails because a notification could not be written or pushed.
type Notifier interface {
	PointsReceived(ctx context.Context, receiverID uuid.UUID, counterpartyNickname string, pts int64)
	ReferralBonusPaid(ctx context.Context, referrerID uuid.UUID, referredNickname string, pts int64)
}

// LedgerService handles all point award flows. Every mutation goes through
// the ledger repository so counter updates and ledger appends stay atomic.
type LedgerService struct {
	ledgerRepo   points.LedgerRepository
	grantRepo    points.ActivityGrantRepository
	runnerRepo   identity.RunnerRepository
	activityRepo activity.Repository
	notifier     Notifier
	logger       *zap.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	ledgerRepo points.LedgerRepository,
	grantRepo points.ActivityGrantRepository,
	runnerRepo identity.RunnerRepository,
	activityRepo activity.Repository,
	notifier Notifier,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		ledgerRepo:   ledgerRepo,
		grantRepo:    grantRepo,
		runnerRepo:   runnerRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// PeerAward credits both sides of a peer-to-peer point exchange: the granter
// for giving, the receiver for receiving. Both entries and both counter
// updates commit in one transaction. A replayed idempotency key fails with
// ALREADY_EXISTS and writes nothing.
func (s *LedgerService) PeerAward(ctx context.Context, input PeerAwardInput) (*PeerAwardResult, error) {
	granter, err := s.runnerRepo.FindByID(ctx, input.GranterID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	receiver, err := s.runnerRepo.FindByID(ctx, input.ReceiverID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	granterTx, receiverTx, err := points.CreatePeerAwardTransactions(granter.ID, receiver.ID)
	if err != nil {
		return nil, err
	}
	if input.IdempotencyKey != "" {
		// One leg carries the token; the batch is atomic, so a replay
		// conflict rolls back both legs.
		granterTx.Entry.WithIdempotencyKey(input.IdempotencyKey)
	}

	if err := s.ledgerRepo.ApplyTransactions(ctx, granterTx, receiverTx); err != nil {
		return nil, err
	}

	s.logger.Info("Peer award applied",
		zap.String("granter_id", granter.ID.String()),
		zap.String("receiver_id", receiver.ID.String()))

	if s.notifier != nil {
		s.notifier.PointsReceived(ctx, receiver.ID, granter.Nickname, points.PeerReceiverAward)
	}

	return &PeerAwardResult{
		GranterEntry:  ToLedgerEntryDTO(granterTx.Entry),
		ReceiverEntry: ToLedgerEntryDTO(receiverTx.Entry),
	}, nil
}

// GrantToActivity credits the owner of an activity in the ledger only. The
// owner's running counters are not touched; activity totals are derived by
// aggregating ledger rows. At most one grant per (granter, activity) pair,
// the store's unique constraint wins any race.
func (s *LedgerService) GrantToActivity(ctx context.Context, input GrantToActivityInput) (*GrantToActivityResult, error) {
	if input.Points <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Point amount must be positive")
	}

	granter, err := s.runnerRepo.FindByID(ctx, input.GranterID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	act, err := s.activityRepo.FindByID(ctx, input.ActivityID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	grant, err := points.NewActivityGrant(granter.ID, act.ID, input.Points)
	if err != nil {
		return nil, err
	}
	tx, err := points.CreateActivityGrantTransaction(act.RunnerID, granter.ID, act.ID, input.Points)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.ApplyActivityGrant(ctx, grant, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Activity grant applied",
		zap.String("granter_id", granter.ID.String()),
		zap.String("activity_id", act.ID.String()),
		zap.Int64("points", input.Points))

	if s.notifier != nil {
		s.notifier.PointsReceived(ctx, act.RunnerID, granter.Nickname, input.Points)
	}

	return &GrantToActivityResult{
		Entry:   ToLedgerEntryDTO(tx.Entry),
		OwnerID: act.RunnerID,
	}, nil
}

// ReferralRegistrationBonus runs the one-time referral flow at registration.
// A resolvable referrer gets the referral bonus and the new runner the signup
// bonus, both as ledger entries in one atomic batch. An unknown reference
// pays nobody: the new runner just keeps a synthetic code for display.
func (s *LedgerService) ReferralRegistrationBonus(ctx context.Context, newRunnerID uuid.UUID, referrerCodeOrID string) (*ReferralBonusResult, error) {
	newRunner, err := s.runnerRepo.FindByID(ctx, newRunnerID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	referrer := s.resolveReferrer(ctx, referrerCodeOrID)
	if referrer == nil {
		code := identity.SyntheticReferralCode()
		newRunner.SetReferredBy(code)
		if err := s.runnerRepo.Save(ctx, newRunner); err != nil {
			return nil, err
		}
		s.logger.Info("Referral code did not resolve, stored synthetic code",
			zap.String("runner_id", newRunner.ID.String()))
		return &ReferralBonusResult{SyntheticCode: code}, nil
	}

	if referrer.ID == newRunner.ID {
		return nil, shared.NewDomainError("INVALID_REFERRER", "Runner cannot refer themselves")
	}

	referralTx, err := points.CreateReferralBonusTransaction(referrer.ID, newRunner.ID)
	if err != nil {
		return nil, err
	}
	signupTx, err := points.CreateSignupBonusTransaction(newRunner.ID, referrer.ID)
	if err != nil {
		return nil, err
	}

	// Referral link and bonus payout commit together; a failed payout must
	// not leave referred_by pointing at the referrer.
	if err := s.ledgerRepo.ApplyReferral(ctx, newRunner.ID, referrer.ID.String(), referralTx, signupTx); err != nil {
		return nil, err
	}
	newRunner.SetReferredBy(referrer.ID.String())

	s.logger.Info("Referral bonus applied",
		zap.String("referrer_id", referrer.ID.String()),
		zap.String("new_runner_id", newRunner.ID.String()))

	if s.notifier != nil {
		s.notifier.ReferralBonusPaid(ctx, referrer.ID, newRunner.Nickname, points.ReferralBonus)
	}

	referrerID := referrer.ID
	return &ReferralBonusResult{
		ReferrerID:    &referrerID,
		ReferralBonus: points.ReferralBonus,
		SignupBonus:   points.SignupBonus,
		ReferrerFound: true,
	}, nil
}

// resolveReferrer resolves a referral reference to a runner, or nil. The
// reference is a runner UUID in the observed flow; anything else is treated
// as unresolvable.
func (s *LedgerService) resolveReferrer(ctx context.Context, codeOrID string) *identity.Runner {
	if codeOrID == "" {
		return nil
	}
	id, err := uuid.Parse(codeOrID)
	if err != nil {
		return nil
	}
	referrer, err := s.runnerRepo.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return referrer
}

// GetReferralCount returns the number of runners referred by the runner.
// Derived from runner rows, never stored.
func (s *LedgerService) GetReferralCount(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	if _, err := s.runnerRepo.FindByID(ctx, runnerID); err != nil {
		return 0, shared.ErrNotFound
	}
	return s.runnerRepo.CountByReferredBy(ctx, runnerID.String())
}

// GetReferralEarnings returns the derived referral statistics for a runner:
// how many runners they referred and the points earned from that set.
func (s *LedgerService) GetReferralEarnings(ctx context.Context, runnerID uuid.UUID) (*ReferralEarningsDTO, error) {
	if _, err := s.runnerRepo.FindByID(ctx, runnerID); err != nil {
		return nil, shared.ErrNotFound
	}

	referredIDs, err := s.runnerRepo.FindIDsByReferredBy(ctx, runnerID.String())
	if err != nil {
		return nil, err
	}

	var total int64
	if len(referredIDs) > 0 {
		total, err = s.ledgerRepo.SumPointsByReceiverAndCounterparties(
			ctx, runnerID, referredIDs, points.ReasonReceived, points.OriginReferral)
		if err != nil {
			return nil, err
		}
	}

	return &ReferralEarningsDTO{
		RunnerID:      runnerID,
		TotalReferred: int64(len(referredIDs)),
		TotalPoints:   total,
	}, nil
}

// GetBalance returns the runner's denormalized point counters
func (s *LedgerService) GetBalance(ctx context.Context, runnerID uuid.UUID) (*BalanceDTO, error) {
	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return &BalanceDTO{
		RunnerID:       runner.ID,
		LifetimePoints: runner.LifetimePoints,
		MonthPoints:    runner.MonthPoints,
		Balance:        runner.Balance,
	}, nil
}

// GetEntry returns a single ledger entry by ID
func (s *LedgerService) GetEntry(ctx context.Context, id uuid.UUID) (*LedgerEntryDTO, error) {
	entry, err := s.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToLedgerEntryDTO(entry)
	return &dto, nil
}

// ListEntries returns a page of ledger entries matching the filter
func (s *LedgerService) ListEntries(ctx context.Context, input ListEntriesInput) (*ListEntriesResult, error) {
	filter := points.DefaultLedgerEntryFilter()
	filter.ReceiverID = input.ReceiverID
	filter.CounterpartyID = input.CounterpartyID
	filter.ActivityID = input.ActivityID
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Reason != "" {
		reason := points.Reason(input.Reason)
		if !reason.IsValid() {
			return nil, shared.NewDomainError("INVALID_REASON", "Invalid ledger reason code")
		}
		filter.Reason = &reason
	}
	if input.Origin != "" {
		origin := points.Origin(input.Origin)
		if !origin.IsValid() {
			return nil, shared.NewDomainError("INVALID_ORIGIN", "Invalid ledger origin code")
		}
		filter.Origin = &origin
	}

	entries, total, err := s.ledgerRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]LedgerEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = ToLedgerEntryDTO(&entries[i])
	}

	return &ListEntriesResult{
		Entries:  dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListActivityGrants returns a page of grants made to an activity
func (s *LedgerService) ListActivityGrants(ctx context.Context, activityID uuid.UUID, filter shared.Filter) (*ListActivityGrantsResult, error) {
	if _, err := s.activityRepo.FindByID(ctx, activityID); err != nil {
		return nil, shared.ErrNotFound
	}

	grants, total, err := s.grantRepo.FindByActivityID(ctx, activityID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ActivityGrantDTO, len(grants))
	for i := range grants {
		dtos[i] = ToActivityGrantDTO(&grants[i])
	}

	return &ListActivityGrantsResult{
		Grants:   dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// GetActivityTotal returns the aggregate points granted to an activity
func (s *LedgerService) GetActivityTotal(ctx context.Context, activityID uuid.UUID) (int64, error) {
	if _, err := s.activityRepo.FindByID(ctx, activityID); err != nil {
		return 0, shared.ErrNotFound
	}
	return s.ledgerRepo.SumPointsByActivity(ctx, activityID)
}
