package user

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Username   string     `gorm:"uniqueIndex;not null" json:"username"`
	Password   string     `gorm:"not null" json:"-"`
	Grade      int        `json:"grade"`
	SchoolName string     `json:"schoolName"`
	CreatedAt  time.Time  `json:"createdAt"`
	Stats      *UserStats `gorm:"constraint:OnDelete:CASCADE" json:"stats,omitempty"`
}

type UserStats struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"-"`
	BestScore      int            `json:"bestScore"`
	BestStage      int            `json:"bestStage"`
	PlayCount      int            `json:"playCount"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalAnswers   int            `json:"totalAnswers"`
	Tier           string         `json:"tier"`
	GradeRank      int            `json:"gradeRank"`
	LastPlayed     time.Time      `json:"lastPlayed"`
	GradeHistory   datatypes.JSON `gorm:"type:jsonb" json:"gradeHistory"`
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Grade      int    `json:"grade"`
	SchoolName string `json:"schoolName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatsSubmission is one play session's reported results. The grade history
// blob is opaque to the server and stored verbatim.
type StatsSubmission struct {
	BestScore      int            `json:"bestScore"`
	BestStage      int            `json:"bestStage"`
	PlayCount      int            `json:"playCount"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalAnswers   int            `json:"totalAnswers"`
	Tier           string         `json:"tier"`
	GradeRank      int            `json:"gradeRank"`
	GradeHistory   datatypes.JSON `json:"gradeHistory"`
}

// applyDefaults fills the fields a client may omit. Stage numbering starts
// at 1 and every player begins in the bronze tier.
func (s *StatsSubmission) applyDefaults() {
	if s.BestStage < 1 {
		s.BestStage = 1
	}
	if s.Tier == "" {
		s.Tier = "bronze"
	}
	if len(s.GradeHistory) == 0 {
		s.GradeHistory = datatypes.JSON("{}")
	}
}

// UserResponse is the public profile shape returned by the auth endpoints.
type UserResponse struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Grade      int        `json:"grade"`
	SchoolName string     `json:"schoolName"`
	Stats      *UserStats `json:"stats,omitempty"`
}

func NewUserResponse(u *User, stats *UserStats) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Grade:      u.Grade,
		SchoolName: u.SchoolName,
		Stats:      stats,
	}
}
