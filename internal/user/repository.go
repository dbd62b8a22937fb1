package user

import (
	"errors"
	"time"

	"github.com/sgomezd/QuizRush/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	CreateUser(username, password string, grade int, schoolName string) (*User, error)
	ValidateUser(username, password string) (*User, error)
	GetUserByUsername(username string) (*User, error)
	FetchUserStats(userID uint) (UserStats, error)
	UpsertStats(userID uint, submission *StatsSubmission) error
	DeleteUser(id uint) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(username, password string, grade int, schoolName string) (*User, error) {
	var exists User
	result := r.db.Where("username = ?", username).First(&exists)
	if result.Error == nil {
		return nil, apperrors.NewAppError(400, "username already taken", nil)
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(500, "internal server error", result.Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return nil, apperrors.NewAppError(500, "internal server error", err)
	}
	newUser := User{
		Username:   username,
		Password:   string(hashed),
		Grade:      grade,
		SchoolName: schoolName,
	}

	// User and its zero-valued stats row are created in one transaction so
	// a user never exists without statistics.
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		stats := defaultStats(newUser.ID)
		return tx.Create(&stats).Error
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "internal server error", err)
	}

	return &newUser, nil
}

func (r *GormUserRepository) ValidateUser(username, password string) (*User, error) {
	var u User
	result := r.db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		return nil, result.Error
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *GormUserRepository) GetUserByUsername(username string) (*User, error) {
	var u User
	result := r.db.Where("username = ?", username).First(&u)
	if result.Error != nil {
		return nil, result.Error
	}

	return &u, nil
}

func (r *GormUserRepository) FetchUserStats(userID uint) (UserStats, error) {
	var stats UserStats
	result := r.db.Where("user_id = ?", userID).First(&stats)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return defaultStats(userID), nil
	}
	if result.Error != nil {
		return UserStats{}, apperrors.NewAppError(500, "internal server error", result.Error)
	}

	return stats, nil
}

// UpsertStats merges one play session into the stats row in a single
// conflict-resolving statement. Best score and best stage only ever grow,
// the play counter increments, everything else is last-write-wins. Doing
// the arithmetic in the statement keeps concurrent submissions for the
// same user from clobbering each other.
func (r *GormUserRepository) UpsertStats(userID uint, submission *StatsSubmission) error {
	row := UserStats{
		UserID:         userID,
		BestScore:      submission.BestScore,
		BestStage:      submission.BestStage,
		PlayCount:      submission.PlayCount,
		CorrectAnswers: submission.CorrectAnswers,
		TotalAnswers:   submission.TotalAnswers,
		Tier:           submission.Tier,
		GradeRank:      submission.GradeRank,
		LastPlayed:     time.Now(),
		GradeHistory:   submission.GradeHistory,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"best_score":      gorm.Expr("GREATEST(user_stats.best_score, EXCLUDED.best_score)"),
			"best_stage":      gorm.Expr("GREATEST(user_stats.best_stage, EXCLUDED.best_stage)"),
			"play_count":      gorm.Expr("user_stats.play_count + 1"),
			"correct_answers": gorm.Expr("EXCLUDED.correct_answers"),
			"total_answers":   gorm.Expr("EXCLUDED.total_answers"),
			"tier":            gorm.Expr("EXCLUDED.tier"),
			"grade_rank":      gorm.Expr("EXCLUDED.grade_rank"),
			"last_played":     gorm.Expr("EXCLUDED.last_played"),
			"grade_history":   gorm.Expr("EXCLUDED.grade_history"),
		}),
	}).Create(&row).Error
	if err != nil {
		return apperrors.NewAppError(500, "internal server error", err)
	}

	return nil
}

func (r *GormUserRepository) DeleteUser(id uint) error {
	result := r.db.Delete(&User{}, id)
	if result.Error != nil {
		return apperrors.NewAppError(500, "internal server error", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewAppError(404, "user not found", nil)
	}

	return nil
}

func defaultStats(userID uint) UserStats {
	return UserStats{
		UserID:       userID,
		BestStage:    1,
		Tier:         "bronze",
		GradeHistory: datatypes.JSON("{}"),
	}
}
