package leaderboard

// Results are capped; callers needing more must narrow by grade.
const maxEntries = 100

type LeaderboardService struct {
	repo LeaderboardRepository
}

func NewLeaderboardService(repo LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

func (s *LeaderboardService) Top() ([]Entry, error) {
	return s.repo.TopEntries(nil, maxEntries)
}

func (s *LeaderboardService) TopByGrade(grade int) ([]Entry, error) {
	return s.repo.TopEntries(&grade, maxEntries)
}

func (s *LeaderboardService) AllUsers() ([]UserRecord, error) {
	return s.repo.AllUsers()
}
