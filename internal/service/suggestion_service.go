package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SuggestionService keeps a per-agency set of known company names in a Redis
// sorted set, scored by usage count so frequent companies rank first.
type SuggestionService struct {
	client *redis.Client
	logger *zap.Logger
	limit  int
}

// NewSuggestionService constructs the service. limit caps the number of
// suggestions returned per lookup.
func NewSuggestionService(client *redis.Client, limit int, logger *zap.Logger) *SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limit <= 0 {
		limit = 10
	}
	return &SuggestionService{client: client, logger: logger, limit: limit}
}

func suggestionKey(agencyID string) string {
	return fmt.Sprintf("crm:companies:%s", agencyID)
}

// RememberCompany records a company name for the agency, bumping its score.
func (s *SuggestionService) RememberCompany(ctx context.Context, agencyID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.client.ZIncrBy(ctx, suggestionKey(agencyID), 1, name).Err()
}

// SuggestCompanies returns known company names matching the prefix, most
// used first. An empty prefix returns the top entries.
func (s *SuggestionService) SuggestCompanies(ctx context.Context, agencyID, prefix string) ([]string, error) {
	names, err := s.client.ZRevRangeByScore(ctx, suggestionKey(agencyID), &redis.ZRangeBy{
		Min:   "-inf",
		Max:   "+inf",
		Count: int64(s.limit * 10),
	}).Result()
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	matches := make([]string, 0, s.limit)
	for _, name := range names {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), prefix) {
			continue
		}
		matches = append(matches, name)
		if len(matches) >= s.limit {
			break
		}
	}
	return matches, nil
}

// ForgetAgency drops the agency's suggestion set.
func (s *SuggestionService) ForgetAgency(ctx context.Context, agencyID string) error {
	return s.client.Del(ctx, suggestionKey(agencyID)).Err()
}
