package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTeamRepository implements event.TeamRepository using GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Team, error) {
	var model models.TeamModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEventID lists teams for an event
func (r *GormTeamRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]event.Team, error) {
	var teamModels []models.TeamModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&teamModels).Error; err != nil {
		return nil, err
	}
	teams := make([]event.Team, len(teamModels))
	for i, model := range teamModels {
		teams[i] = *model.ToDomain()
	}
	return teams, nil
}

// Save inserts or updates a team
func (r *GormTeamRepository) Save(ctx context.Context, team *event.Team) error {
	model := models.TeamModelFromDomain(team)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a team and its memberships
func (r *GormTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.TeamModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&models.TeamMemberModel{}, "team_id = ?", id).Error
	})
}

// AddMember inserts a membership row. Adding a runner who is already a member
// fails with shared.ErrAlreadyExists.
func (r *GormTeamRepository) AddMember(ctx context.Context, member *event.TeamMember) error {
	model := &models.TeamMemberModel{}
	model.FromDomain(member)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// RemoveMember deletes a membership row
func (r *GormTeamRepository) RemoveMember(ctx context.Context, teamID, runnerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("team_id = ? AND runner_id = ?", teamID, runnerID).
		Delete(&models.TeamMemberModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindMembers lists a team's members
func (r *GormTeamRepository) FindMembers(ctx context.Context, teamID uuid.UUID) ([]event.TeamMember, error) {
	var memberModels []models.TeamMemberModel
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	members := make([]event.TeamMember, len(memberModels))
	for i, model := range memberModels {
		members[i] = *model.ToDomain()
	}
	return members, nil
}

// IsMember reports whether a runner belongs to a team
func (r *GormTeamRepository) IsMember(ctx context.Context, teamID, runnerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamMemberModel{}).
		Where("team_id = ? AND runner_id = ?", teamID, runnerID).
		Count(&count).Error
	return count > 0, err
}

// IsMemberOfEvent reports whether a runner belongs to any team of the event
func (r *GormTeamRepository) IsMemberOfEvent(ctx context.Context, eventID, runnerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TeamMemberModel{}).
		Joins("JOIN teams ON teams.id = team_members.team_id").
		Where("teams.event_id = ? AND team_members.runner_id = ?", eventID, runnerID).
		Count(&count).Error
	return count > 0, err
}
