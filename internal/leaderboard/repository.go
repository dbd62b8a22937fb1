package leaderboard

import (
	"github.com/sgomezd/QuizRush/internal/apperrors"
	"gorm.io/gorm"
)

type LeaderboardRepository interface {
	TopEntries(grade *int, limit int) ([]Entry, error)
	AllUsers() ([]UserRecord, error)
}

type GormLeaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *GormLeaderboardRepository {
	return &GormLeaderboardRepository{db: db}
}

// TopEntries returns ranked rows, highest score first with the furthest
// stage breaking ties. Users without a stats row do not appear.
func (r *GormLeaderboardRepository) TopEntries(grade *int, limit int) ([]Entry, error) {
	entries := []Entry{}
	query := r.db.Table("users").
		Select(`users.username, users.grade, users.school_name,
			user_stats.best_score, user_stats.best_stage, user_stats.play_count,
			user_stats.correct_answers, user_stats.total_answers, user_stats.tier,
			user_stats.grade_rank, user_stats.last_played, user_stats.grade_history`).
		Joins("JOIN user_stats ON user_stats.user_id = users.id").
		Order("user_stats.best_score DESC, user_stats.best_stage DESC").
		Limit(limit)

	if grade != nil {
		query = query.Where("users.grade = ?", *grade)
	}

	if err := query.Scan(&entries).Error; err != nil {
		return nil, apperrors.NewAppError(500, "internal server error", err)
	}

	return entries, nil
}

// AllUsers lists every account, substituting default stats where no row
// exists yet.
func (r *GormLeaderboardRepository) AllUsers() ([]UserRecord, error) {
	records := []UserRecord{}
	err := r.db.Table("users").
		Select(`users.id, users.username, users.grade, users.school_name, users.created_at,
			COALESCE(user_stats.best_score, 0) AS best_score,
			COALESCE(user_stats.best_stage, 1) AS best_stage,
			COALESCE(user_stats.play_count, 0) AS play_count,
			COALESCE(user_stats.tier, 'bronze') AS tier,
			COALESCE(user_stats.grade_rank, 0) AS grade_rank`).
		Joins("LEFT JOIN user_stats ON user_stats.user_id = users.id").
		Order("users.id").
		Scan(&records).Error
	if err != nil {
		return nil, apperrors.NewAppError(500, "internal server error", err)
	}

	return records, nil
}
