// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

// Package validation checks request and profile structs against their
// validate tags with go-playground/validator v10.
//
// Errors name fields by their json tag, so a rejected match request reports
// "weights" rather than "Weights". The custom "finite" tag rejects NaN and
// ±Inf, and combines with dive for embeddings:
//
//	type SearchRequest struct {
//	    Query []float64 `json:"query" validate:"required,min=1,dive,finite"`
//	    K     int       `json:"k" validate:"gte=0,lte=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return &ValidationError{Field: verr.Field(), Reason: verr.Error()}
//	}
//
// The API layer turns a *RequestValidationError into a 400 VALIDATION_ERROR
// body with ToAPIError. Rules that tags cannot express, such as a salary
// range with min above max, are checked by the owning package after
// ValidateStruct passes.
package validation
