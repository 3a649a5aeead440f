// Package matching scores résumés against job postings. The scoring itself
// is a pure function over the two records; persistence of the result lives
// in the service.
package matching

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"docuflow/internal/domain"
)

// Factor weights for the total score, and the required/preferred split
// inside the skills factor.
const (
	weightSkills     = 0.6
	weightExperience = 0.3
	weightLocation   = 0.1

	weightRequired  = 0.8
	weightPreferred = 0.2
)

// MatchResult is the outcome of scoring one résumé against one job posting.
type MatchResult struct {
	Score          int                   `json:"score"`
	Breakdown      domain.MatchBreakdown `json:"breakdown"`
	MatchedSkills  []string              `json:"matchedSkills"`
	MissingSkills  []string              `json:"missingSkills"`
	Recommendation domain.Recommendation `json:"recommendation"`
}

// resumeSkills is the worker-defined shape of the résumé's skills document.
// Unknown or malformed shapes degrade to an empty skill set.
type resumeSkills struct {
	Technical  []string `json:"technical"`
	SoftSkills []string `json:"soft_skills"`
	Tools      []string `json:"tools"`
}

var firstInteger = regexp.MustCompile(`\d+`)

// Score computes the weighted compatibility between a résumé and a job
// posting. All skill comparison is case-insensitive; matched and missing
// skills are reported lowercased.
func Score(resume *domain.Resume, job *domain.JobPosting) MatchResult {
	var breakdown domain.MatchBreakdown

	// Skills component: the résumé's skill set is the union of its
	// technical, soft, and tool skills.
	var skills resumeSkills
	if len(resume.Skills) > 0 {
		_ = json.Unmarshal(resume.Skills, &skills)
	}
	resumeSet := make(map[string]bool)
	for _, group := range [][]string{skills.Technical, skills.SoftSkills, skills.Tools} {
		for _, s := range group {
			resumeSet[strings.ToLower(s)] = true
		}
	}

	matched, missing := partitionSkills(job.RequiredSkills, resumeSet)
	matchedPreferred, _ := partitionSkills(job.PreferredSkills, resumeSet)

	requiredScore := 100.0
	if len(job.RequiredSkills) > 0 {
		requiredScore = float64(len(matched)) / float64(len(job.RequiredSkills)) * 100
	}
	preferredScore := 100.0
	if len(job.PreferredSkills) > 0 {
		preferredScore = float64(len(matchedPreferred)) / float64(len(job.PreferredSkills)) * 100
	}
	breakdown.SkillsMatch = round(requiredScore*weightRequired + preferredScore*weightPreferred)

	// Experience component: the first integer in experience_required is the
	// minimum years ("5-10 years" -> 5, "3+ years" -> 3).
	minYears := 0
	if job.ExperienceRequired != nil {
		if m := firstInteger.FindString(*job.ExperienceRequired); m != "" {
			minYears = atoiSafe(m)
		}
	}
	resumeYears := 0.0
	if resume.TotalYearsExperience != nil {
		resumeYears = *resume.TotalYearsExperience
	}
	if minYears == 0 {
		breakdown.ExperienceMatch = 100
	} else {
		breakdown.ExperienceMatch = round(resumeYears / float64(minYears) * 100)
		if breakdown.ExperienceMatch > 100 {
			breakdown.ExperienceMatch = 100
		}
	}

	// Location component: pure case-insensitive containment, either
	// direction. No location on either side means no preference.
	jobLoc := deref(job.Location)
	resLoc := deref(resume.Location)
	switch {
	case jobLoc == "" || resLoc == "":
		breakdown.LocationMatch = 100
	case strings.Contains(strings.ToLower(jobLoc), strings.ToLower(resLoc)),
		strings.Contains(strings.ToLower(resLoc), strings.ToLower(jobLoc)):
		breakdown.LocationMatch = 100
	default:
		breakdown.LocationMatch = 0
	}

	total := round(float64(breakdown.SkillsMatch)*weightSkills +
		float64(breakdown.ExperienceMatch)*weightExperience +
		float64(breakdown.LocationMatch)*weightLocation)

	return MatchResult{
		Score:          total,
		Breakdown:      breakdown,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Recommendation: recommendationFor(total),
	}
}

// recommendationFor maps a total score onto the recommendation scale.
// Thresholds are inclusive lower bounds.
func recommendationFor(score int) domain.Recommendation {
	switch {
	case score >= 90:
		return domain.RecommendationStrongYes
	case score >= 75:
		return domain.RecommendationYes
	case score >= 50:
		return domain.RecommendationMaybe
	case score >= 25:
		return domain.RecommendationNo
	default:
		return domain.RecommendationStrongNo
	}
}

// partitionSkills splits a job's skill list into those found in the résumé's
// skill set and those missing, lowercased.
func partitionSkills(jobSkills []string, resumeSet map[string]bool) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, s := range jobSkills {
		lower := strings.ToLower(s)
		if resumeSet[lower] {
			matched = append(matched, lower)
		} else {
			missing = append(missing, lower)
		}
	}
	return matched, missing
}

func round(f float64) int {
	return int(math.Round(f))
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
