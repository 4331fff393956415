// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package models

import (
	"strings"
	"time"
)

// SkillLevel is the proficiency tier of a skill.
type SkillLevel string

// Skill levels in ascending order.
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
	SkillMaster       SkillLevel = "master"
)

// Tier returns the 1-based ordinal of the level, or 0 when unknown.
func (l SkillLevel) Tier() int {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(string(l)))) {
	case SkillBeginner, "novice":
		return 1
	case SkillIntermediate:
		return 2
	case SkillAdvanced, "proficient":
		return 3
	case SkillExpert:
		return 4
	case SkillMaster:
		return 5
	default:
		return 0
	}
}

// EducationLevel is the degree tier of an education entry or requirement.
type EducationLevel string

// Education levels in ascending order.
const (
	EducationHighSchool   EducationLevel = "high_school"
	EducationAssociate    EducationLevel = "associate"
	EducationBachelor     EducationLevel = "bachelor"
	EducationMaster       EducationLevel = "master"
	EducationDoctorate    EducationLevel = "doctorate"
	EducationPostdoctoral EducationLevel = "postdoctoral"
)

// Tier returns the 1-based ordinal of the level, or 0 when unknown.
func (l EducationLevel) Tier() int {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(l))), "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch EducationLevel(normalized) {
	case EducationHighSchool, "secondary":
		return 1
	case EducationAssociate:
		return 2
	case EducationBachelor, "bachelors", "undergraduate":
		return 3
	case EducationMaster, "masters", "graduate":
		return 4
	case EducationDoctorate, "phd", "doctoral":
		return 5
	case EducationPostdoctoral, "postdoc":
		return 6
	default:
		return 0
	}
}

// Skill is a named capability held by a candidate.
type Skill struct {
	Name            string     `json:"name" validate:"required"`
	Level           SkillLevel `json:"level,omitempty"`
	YearsExperience float64    `json:"years_experience,omitempty" validate:"gte=0"`
}

// SkillRequirement is a skill requested by a job.
// Importance of zero means unspecified.
type SkillRequirement struct {
	Name            string     `json:"name" validate:"required"`
	Level           SkillLevel `json:"level,omitempty"`
	YearsExperience float64    `json:"years_experience,omitempty" validate:"gte=0"`
	Required        bool       `json:"required"`
	Importance      float64    `json:"importance,omitempty" validate:"gte=0,lte=10"`
}

// WorkExperience is one entry of a candidate's work history.
// Level is optional; when empty it is inferred from Position.
type WorkExperience struct {
	Position  string     `json:"position"`
	Company   string     `json:"company"`
	Industry  string     `json:"industry,omitempty"`
	Level     string     `json:"level,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Current   bool       `json:"current"`
}

// Years returns the length of the entry in years as of now.
// Current entries and entries without an end date run until now.
func (w *WorkExperience) Years(now time.Time) float64 {
	end := now
	if !w.Current && w.EndDate != nil {
		end = *w.EndDate
	}
	if w.StartDate.IsZero() || end.Before(w.StartDate) {
		return 0
	}
	return end.Sub(w.StartDate).Hours() / 24 / 365.25
}

// Education is one education entry of a candidate.
type Education struct {
	Level          EducationLevel `json:"level"`
	Field          string         `json:"field"`
	Specialization string         `json:"specialization,omitempty"`
	Institution    string         `json:"institution,omitempty"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        *time.Time     `json:"end_date,omitempty"`
	Current        bool           `json:"current"`
}

// ExperienceRequirement is a role a job expects the candidate to have held.
type ExperienceRequirement struct {
	Title         string  `json:"title"`
	Level         string  `json:"level,omitempty"`
	YearsRequired float64 `json:"years_required,omitempty" validate:"gte=0"`
	Industry      string  `json:"industry,omitempty"`
	Required      bool    `json:"required"`
}

// EducationRequirement is an education level/field a job expects.
type EducationRequirement struct {
	Level          EducationLevel `json:"level,omitempty"`
	Field          string         `json:"field,omitempty"`
	Specialization string         `json:"specialization,omitempty"`
	Required       bool           `json:"required"`
}

// LocationInfo describes where a candidate lives or a job is based.
type LocationInfo struct {
	Country           string `json:"country,omitempty"`
	City              string `json:"city,omitempty"`
	IsRemote          bool   `json:"is_remote"`
	RelocationWilling bool   `json:"relocation_willing"`
}

// SalaryRange is an inclusive [Min, Max] compensation range.
type SalaryRange struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gte=0"`
	Currency string  `json:"currency,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r *SalaryRange) IsZero() bool {
	return r == nil || (r.Min == 0 && r.Max == 0)
}

// JobPreferences are the candidate's preferences about the job itself.
// TravelWillingness is a percentage of working time in [0,100].
type JobPreferences struct {
	WorkTypes         []string     `json:"work_types,omitempty"`
	TeamSize          string       `json:"team_size,omitempty"`
	Schedule          string       `json:"schedule,omitempty"`
	TravelWillingness *float64     `json:"travel_willingness,omitempty" validate:"omitempty,gte=0,lte=100"`
	Environment       string       `json:"environment,omitempty"`
	SalaryRange       *SalaryRange `json:"salary_range,omitempty"`
}

// EmployerPreferences describe the working arrangement the employer offers.
// TravelRequirement is a percentage of working time in [0,100].
type EmployerPreferences struct {
	WorkTypes         []string `json:"work_types,omitempty"`
	TeamSize          string   `json:"team_size,omitempty"`
	Schedule          string   `json:"schedule,omitempty"`
	TravelRequirement *float64 `json:"travel_requirement,omitempty" validate:"omitempty,gte=0,lte=100"`
	Environment       string   `json:"environment,omitempty"`
}

// CompensationInfo is the salary range a job offers.
type CompensationInfo = SalaryRange

// CandidateProfile is an immutable snapshot of a job seeker.
//
// CulturalFit and AIPrediction are optional externally computed factor
// scores in [0,1]; they participate in the overall score only when set.
type CandidateProfile struct {
	ID           string           `json:"id" validate:"required"`
	Name         string           `json:"name,omitempty"`
	Headline     string           `json:"headline,omitempty"`
	Skills       []Skill          `json:"skills,omitempty" validate:"dive"`
	Experience   []WorkExperience `json:"experience,omitempty"`
	Education    []Education      `json:"education,omitempty"`
	Location     LocationInfo     `json:"location"`
	Preferences  JobPreferences   `json:"preferences"`
	Keywords     []string         `json:"keywords,omitempty"`
	CulturalFit  *float64         `json:"cultural_fit,omitempty" validate:"omitempty,gte=0,lte=1"`
	AIPrediction *float64         `json:"ai_prediction,omitempty" validate:"omitempty,gte=0,lte=1"`
	ResponseRate float64          `json:"response_rate" validate:"gte=0,lte=1"`
	Rating       float64          `json:"rating,omitempty" validate:"gte=0,lte=5"`
	LastActive   time.Time        `json:"last_active"`
}

// TotalYears returns the summed length of all work entries as of now.
func (c *CandidateProfile) TotalYears(now time.Time) float64 {
	var total float64
	for i := range c.Experience {
		total += c.Experience[i].Years(now)
	}
	return total
}

// JobProfile is an immutable snapshot of a job posting.
type JobProfile struct {
	ID                  string                  `json:"id" validate:"required"`
	Title               string                  `json:"title"`
	Employer            string                  `json:"employer,omitempty"`
	Industry            string                  `json:"industry,omitempty"`
	Description         string                  `json:"description,omitempty"`
	Skills              []SkillRequirement      `json:"skills,omitempty" validate:"dive"`
	Experience          []ExperienceRequirement `json:"experience,omitempty" validate:"dive"`
	Education           []EducationRequirement  `json:"education,omitempty"`
	Location            LocationInfo            `json:"location"`
	EmployerPreferences EmployerPreferences     `json:"employer_preferences"`
	Compensation        *CompensationInfo       `json:"compensation,omitempty"`
	Keywords            []string                `json:"keywords,omitempty"`
	CulturalFit         *float64                `json:"cultural_fit,omitempty" validate:"omitempty,gte=0,lte=1"`
	AIPrediction        *float64                `json:"ai_prediction,omitempty" validate:"omitempty,gte=0,lte=1"`
	ResponseRate        float64                 `json:"response_rate" validate:"gte=0,lte=1"`
	Rating              float64                 `json:"rating,omitempty" validate:"gte=0,lte=5"`
	PostedAt            time.Time               `json:"posted_at"`
}
