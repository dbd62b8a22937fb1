package leaderboard

import (
	"github.com/stretchr/testify/mock"
)

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) TopEntries(grade *int, limit int) ([]Entry, error) {
	args := m.Called(grade, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func (m *MockLeaderboardRepository) AllUsers() ([]UserRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]UserRecord), args.Error(1)
}
