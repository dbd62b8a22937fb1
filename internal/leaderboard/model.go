package leaderboard

import (
	"time"

	"gorm.io/datatypes"
)

// Entry joins a user's public profile with its statistics for ranking
// views.
type Entry struct {
	Username       string         `json:"username"`
	Grade          int            `json:"grade"`
	SchoolName     string         `json:"schoolName"`
	BestScore      int            `json:"bestScore"`
	BestStage      int            `json:"bestStage"`
	PlayCount      int            `json:"playCount"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalAnswers   int            `json:"totalAnswers"`
	Tier           string         `json:"tier"`
	GradeRank      int            `json:"gradeRank"`
	LastPlayed     time.Time      `json:"lastPlayed"`
	GradeHistory   datatypes.JSON `json:"gradeHistory"`
}

// UserRecord is one row of the bulk user listing. Users without a stats
// row get defaults instead of being dropped.
type UserRecord struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Grade      int       `json:"grade"`
	SchoolName string    `json:"schoolName"`
	CreatedAt  time.Time `json:"createdAt"`
	BestScore  int       `json:"bestScore"`
	BestStage  int       `json:"bestStage"`
	PlayCount  int       `json:"playCount"`
	Tier       string    `json:"tier"`
	GradeRank  int       `json:"gradeRank"`
}
