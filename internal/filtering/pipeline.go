// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package filtering

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
	"github.com/tomtom215/talentmatch/internal/models"
)

// Config holds pagination limits.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns a page size of 20 capped at 100.
func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 100}
}

// Page requests one page of results. Zero values use page 1 and the
// configured default limit.
type Page struct {
	Page  int `json:"page,omitempty" validate:"gte=0"`
	Limit int `json:"limit,omitempty" validate:"gte=0"`
}

// Result is one page of filtered, sorted items.
type Result struct {
	Items      []models.MatchResult `json:"items"`
	TotalItems int                  `json:"total_items"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	HasMore    bool                 `json:"has_more"`
	SortKey    string               `json:"sort_key"`
	SortOrder  string               `json:"sort_order"`
}

// Pipeline filters, sorts and paginates match results. It is safe for
// concurrent use.
type Pipeline struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates a pipeline. Non-positive limits fall back to DefaultConfig.
func New(cfg Config) *Pipeline {
	def := DefaultConfig()
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return &Pipeline{cfg: cfg, logger: logging.WithComponent("filtering")}
}

// Validate checks every criteria object before any item is touched.
func (p *Pipeline) Validate(filters *Filters, sortBy *Sort, page Page) error {
	if err := filters.Validate(); err != nil {
		return err
	}
	if err := sortBy.Validate(); err != nil {
		return err
	}
	if err := fromStruct(&page); err != nil {
		return err
	}
	if page.Limit > p.cfg.MaxLimit {
		return invalid("limit", "must be at most %d, got %d", p.cfg.MaxLimit, page.Limit)
	}
	return nil
}

// Apply filters, sorts and paginates items. The input slice is not modified.
func (p *Pipeline) Apply(items []models.MatchResult, filters *Filters, sortBy *Sort, page Page) (*Result, error) {
	if err := p.Validate(filters, sortBy, page); err != nil {
		metrics.RecordFilterRejection()
		return nil, err
	}

	matched := make([]models.MatchResult, 0, len(items))
	for i := range items {
		if filters.Match(&items[i]) {
			matched = append(matched, items[i])
		}
	}
	SortItems(matched, sortBy)

	limit := page.Limit
	if limit == 0 {
		limit = p.cfg.DefaultLimit
	}
	pageNum := page.Page
	if pageNum == 0 {
		pageNum = 1
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	start := (pageNum - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	key, known := ResolveSortKey(sortKeyOf(sortBy))
	order := OrderDesc
	if sortBy != nil && sortBy.Order == OrderAsc {
		order = OrderAsc
	}
	if !known && sortKeyOf(sortBy) != "" {
		p.logger.Debug().Str("sort_key", sortKeyOf(sortBy)).Msg("unknown sort key, using overall_score")
	}

	return &Result{
		Items:      matched[start:end],
		TotalItems: total,
		Page:       pageNum,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    end < total,
		SortKey:    string(key),
		SortOrder:  order,
	}, nil
}

func sortKeyOf(s *Sort) string {
	if s == nil {
		return ""
	}
	return s.Key
}
