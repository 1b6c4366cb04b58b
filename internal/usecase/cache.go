package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListingCache stores non-personalised listing pages. Scores are never cached.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

const (
	jobListKeyPrefix    = "jobs:list:"
	courseListKeyPrefix = "courses:list:"
	applyLockTTL        = 15 * time.Second
)

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func hashKey(prefix string, in any) string {
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

// JobListCacheKey is stable for filters that differ only in case or spacing.
func JobListCacheKey(p JobListParams) string {
	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s = normalizeSearchValue(s); s != "" {
			skills = append(skills, s)
		}
	}
	return hashKey(jobListKeyPrefix, struct {
		JobType         string   `json:"job_type"`
		WorkArrangement string   `json:"work_arrangement"`
		Location        string   `json:"location"`
		Company         string   `json:"company"`
		Search          string   `json:"search"`
		Skills          []string `json:"skills"`
		SortBy          string   `json:"sort_by"`
		SortOrder       string   `json:"sort_order"`
		Page            int      `json:"page"`
		Limit           int      `json:"limit"`
	}{
		JobType:         normalizeSearchValue(p.JobType),
		WorkArrangement: normalizeSearchValue(p.WorkArrangement),
		Location:        normalizeSearchValue(p.Location),
		Company:         normalizeSearchValue(p.Company),
		Search:          normalizeSearchValue(p.Search),
		Skills:          skills,
		SortBy:          p.SortBy,
		SortOrder:       p.SortOrder,
		Page:            p.Page,
		Limit:           p.Limit,
	})
}

func CourseListCacheKey(p CourseListParams) string {
	return hashKey(courseListKeyPrefix, struct {
		Level     string `json:"level"`
		Category  string `json:"category"`
		Provider  string `json:"provider"`
		Pricing   string `json:"pricing"`
		Search    string `json:"search"`
		SortBy    string `json:"sort_by"`
		SortOrder string `json:"sort_order"`
		Page      int    `json:"page"`
		Limit     int    `json:"limit"`
	}{
		Level:     normalizeSearchValue(p.Level),
		Category:  normalizeSearchValue(p.Category),
		Provider:  normalizeSearchValue(p.Provider),
		Pricing:   normalizeSearchValue(p.Pricing),
		Search:    normalizeSearchValue(p.Search),
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Page:      p.Page,
		Limit:     p.Limit,
	})
}

func applyLockKey(jobID, userID uuid.UUID) string {
	return "jobs:apply:" + jobID.String() + ":" + userID.String()
}
