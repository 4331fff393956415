// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/talentmatch/internal/eventlog"
	"github.com/tomtom215/talentmatch/internal/feed"
	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/pipeline"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/ranking"
	"github.com/tomtom215/talentmatch/internal/recommend"
	"github.com/tomtom215/talentmatch/internal/similarity"
	"github.com/tomtom215/talentmatch/internal/validation"
)

// Handler-level sentinel errors.
var (
	// ErrBadBody is returned for request bodies that are not valid JSON.
	ErrBadBody = errors.New("malformed request body")

	// ErrBodyTooLarge is returned when a body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrIDMismatch is returned when a body ID contradicts the URL ID.
	ErrIDMismatch = errors.New("body id does not match path id")

	// ErrTrainThrottled is returned when training is triggered too often.
	ErrTrainThrottled = errors.New("training trigger rate limit exceeded")
)

// validationSentinels are the per-package input rejection errors surfaced
// as 400 VALIDATION_ERROR.
var validationSentinels = []error{
	matching.ErrInvalidWeights,
	matching.ErrUnknownPreset,
	matching.ErrInvalidProfile,
	similarity.ErrDimensionMismatch,
	similarity.ErrEmptyVector,
	similarity.ErrNonFinite,
	similarity.ErrUnknownMetric,
	similarity.ErrInvalidOptions,
	similarity.ErrInvalidFilter,
	ranking.ErrInvalidCriteria,
	filtering.ErrInvalidCriteria,
	recommend.ErrUnknownMode,
	recommend.ErrInvalidInteraction,
	recommend.ErrInvalidRequest,
	pipeline.ErrInvalidRequest,
	ErrIDMismatch,
}

// classifyError maps an error to an HTTP status and an API error body.
// Unknown errors become 500 with a generic message.
func classifyError(err error) (int, *models.APIError) {
	var reqErr *validation.RequestValidationError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest, reqErr.ToAPIError()
	}

	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			apiErr := &models.APIError{Code: ErrCodeValidation, Message: err.Error()}
			if field := fieldOf(err); field != "" {
				apiErr.Details = map[string]interface{}{"field": field}
			}
			return http.StatusBadRequest, apiErr
		}
	}

	switch {
	case errors.Is(err, ErrBadBody):
		return http.StatusBadRequest, &models.APIError{Code: ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, &models.APIError{Code: ErrCodePayloadTooLarge, Message: err.Error()}
	case errors.Is(err, profiles.ErrNotFound):
		return http.StatusNotFound, &models.APIError{Code: ErrCodeNotFound, Message: err.Error()}
	case errors.Is(err, recommend.ErrTrainingInProgress):
		return http.StatusConflict, &models.APIError{Code: ErrCodeConflict, Message: err.Error()}
	case errors.Is(err, ErrTrainThrottled):
		return http.StatusTooManyRequests, &models.APIError{Code: ErrCodeTooManyRequests, Message: err.Error()}
	case errors.Is(err, profiles.ErrUnavailable),
		errors.Is(err, eventlog.ErrClosed),
		errors.Is(err, feed.ErrClosed):
		return http.StatusServiceUnavailable, &models.APIError{Code: ErrCodeServiceUnavailable, Message: "Service temporarily unavailable"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, &models.APIError{Code: ErrCodeTimeout, Message: "Request timed out"}
	default:
		return http.StatusInternalServerError, &models.APIError{Code: ErrCodeInternal, Message: "Internal server error"}
	}
}

// fieldOf returns the offending field from any package's ValidationError.
func fieldOf(err error) string {
	var (
		matchErr    *matching.ValidationError
		simErr      *similarity.ValidationError
		rankErr     *ranking.ValidationError
		filterErr   *filtering.ValidationError
		recErr      *recommend.ValidationError
		pipelineErr *pipeline.ValidationError
	)
	switch {
	case errors.As(err, &matchErr):
		return matchErr.Field
	case errors.As(err, &simErr):
		return simErr.Field
	case errors.As(err, &rankErr):
		return rankErr.Field
	case errors.As(err, &filterErr):
		return filterErr.Field
	case errors.As(err, &recErr):
		return recErr.Field
	case errors.As(err, &pipelineErr):
		return pipelineErr.Field
	default:
		return ""
	}
}
