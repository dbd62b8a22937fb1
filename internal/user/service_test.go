package user

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sgomezd/QuizRush/internal/apperrors"
)

// mockGenerateJWT is a helper to override GenerateJWT in tests
var mockGenerateJWT func(id uint, username string) (string, error)

func TestMain(m *testing.M) {
	// Patch GenerateJWT for all tests
	orig := GenerateJWT
	GenerateJWT = func(id uint, username string) (string, error) {
		if mockGenerateJWT != nil {
			return mockGenerateJWT(id, username)
		}
		return orig(id, username)
	}
	code := m.Run()
	GenerateJWT = orig
	os.Exit(code)
}

func TestUserService_Register(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	created := &User{ID: 1, Username: "test", Grade: 3, SchoolName: "Springfield"}
	mockRepo.On("CreateUser", "test", "pass", 3, "Springfield").Return(created, nil)
	mockGenerateJWT = func(id uint, username string) (string, error) { return "token123", nil }
	defer func() { mockGenerateJWT = nil }()

	resp, token, err := service.Register(RegisterRequest{
		Username:   "test",
		Password:   "pass",
		Grade:      3,
		SchoolName: "Springfield",
	})
	assert.NoError(t, err)
	assert.Equal(t, "token123", token)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "test", resp.Username)
	assert.Equal(t, 3, resp.Grade)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	dup := apperrors.NewAppError(400, "username already taken", nil)
	mockRepo.On("CreateUser", "taken", "pass", 1, "").Return(nil, dup)

	_, _, err := service.Register(RegisterRequest{Username: "taken", Password: "pass", Grade: 1})
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	u := &User{ID: 2, Username: "foo", Grade: 5}
	stats := UserStats{UserID: 2, BestScore: 900, BestStage: 4, PlayCount: 12, Tier: "gold"}
	mockRepo.On("ValidateUser", "foo", "bar").Return(u, nil)
	mockRepo.On("FetchUserStats", uint(2)).Return(stats, nil)
	mockGenerateJWT = func(id uint, username string) (string, error) { return "tok456", nil }
	defer func() { mockGenerateJWT = nil }()

	resp, token, err := service.Login(LoginRequest{Username: "foo", Password: "bar"})
	assert.NoError(t, err)
	assert.Equal(t, "tok456", token)
	assert.NotNil(t, resp.Stats)
	assert.Equal(t, 900, resp.Stats.BestScore)
	assert.Equal(t, "gold", resp.Stats.Tier)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_UniformError(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	mockRepo.On("ValidateUser", "ghost", "pw").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("ValidateUser", "alice", "wrong").Return(nil, bcrypt.ErrMismatchedHashAndPassword)

	_, _, errUnknown := service.Login(LoginRequest{Username: "ghost", Password: "pw"})
	_, _, errWrongPw := service.Login(LoginRequest{Username: "alice", Password: "wrong"})

	unknownApp, ok := errUnknown.(*apperrors.AppError)
	assert.True(t, ok)
	wrongPwApp, ok := errWrongPw.(*apperrors.AppError)
	assert.True(t, ok)

	// unknown username and bad password must be indistinguishable
	assert.Equal(t, unknownApp.Code, wrongPwApp.Code)
	assert.Equal(t, unknownApp.Message, wrongPwApp.Message)
	assert.Equal(t, 401, unknownApp.Code)
	mockRepo.AssertExpectations(t)
}

func TestUserService_MergeStats(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	u := &User{ID: 3, Username: "alice"}
	mockRepo.On("GetUserByUsername", "alice").Return(u, nil)
	mockRepo.On("UpsertStats", uint(3), mock.MatchedBy(func(s *StatsSubmission) bool {
		return s.BestScore == 150 && s.BestStage == 2 && s.CorrectAnswers == 7 && s.TotalAnswers == 10
	})).Return(nil)

	err := service.MergeStats("alice", StatsSubmission{
		BestScore:      150,
		BestStage:      2,
		CorrectAnswers: 7,
		TotalAnswers:   10,
		Tier:           "silver",
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_MergeStats_Defaults(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	u := &User{ID: 4, Username: "bob"}
	mockRepo.On("GetUserByUsername", "bob").Return(u, nil)
	mockRepo.On("UpsertStats", uint(4), mock.MatchedBy(func(s *StatsSubmission) bool {
		return s.BestStage == 1 &&
			s.Tier == "bronze" &&
			string(s.GradeHistory) == "{}"
	})).Return(nil)

	err := service.MergeStats("bob", StatsSubmission{BestScore: 10})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_MergeStats_UserNotFound(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	mockRepo.On("GetUserByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound)

	err := service.MergeStats("nobody", StatsSubmission{BestScore: 50})
	assert.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
	mockRepo.AssertExpectations(t)
}

func TestUserService_MergeStats_Concurrent(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	u := &User{ID: 5, Username: "carol"}
	mockRepo.On("GetUserByUsername", "carol").Return(u, nil)
	mockRepo.On("UpsertStats", uint(5), mock.AnythingOfType("*user.StatsSubmission")).Return(nil)

	var wg sync.WaitGroup
	for _, score := range []int{50, 80} {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			err := service.MergeStats("carol", StatsSubmission{BestScore: score})
			assert.NoError(t, err)
		}(score)
	}
	wg.Wait()

	// both submissions must reach the atomic upsert, none dropped
	mockRepo.AssertNumberOfCalls(t, "UpsertStats", 2)
}

func TestUserService_DeleteAccount(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	mockRepo.On("DeleteUser", uint(6)).Return(nil)

	err := service.DeleteAccount(6)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestStatsSubmission_ApplyDefaults(t *testing.T) {
	s := StatsSubmission{}
	s.applyDefaults()

	assert.Equal(t, 0, s.BestScore)
	assert.Equal(t, 1, s.BestStage)
	assert.Equal(t, 0, s.PlayCount)
	assert.Equal(t, "bronze", s.Tier)
	assert.Equal(t, datatypes.JSON("{}"), s.GradeHistory)
}

func TestStatsSubmission_ApplyDefaults_KeepsValues(t *testing.T) {
	s := StatsSubmission{
		BestScore:    200,
		BestStage:    3,
		Tier:         "diamond",
		GradeHistory: datatypes.JSON(`{"2026-01":"gold"}`),
	}
	s.applyDefaults()

	assert.Equal(t, 3, s.BestStage)
	assert.Equal(t, "diamond", s.Tier)
	assert.Equal(t, datatypes.JSON(`{"2026-01":"gold"}`), s.GradeHistory)
}
