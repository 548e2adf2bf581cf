package service

import (
	"sort"
	"strings"

	"github.com/aifolio/backend/internal/models"
	"github.com/aifolio/backend/internal/types"
)

// NormalizeSkills converts a skills value from a request body into an
// ordered list of trimmed, non-empty strings. A list keeps each entry
// that is a non-empty string after trimming; a single string is split
// on commas. Case is preserved. Any other shape yields an empty list.
func NormalizeSkills(value interface{}) []string {
	out := []string{}
	switch v := value.(type) {
	case []string:
		for _, s := range v {
			if t := strings.TrimSpace(s); t != "" {
				out = append(out, t)
			}
		}
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if t := strings.TrimSpace(s); t != "" {
				out = append(out, t)
			}
		}
	case string:
		for _, piece := range strings.Split(v, ",") {
			if t := strings.TrimSpace(piece); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// TopSkills scans every project's skill list, lowercases and trims each
// entry, and returns the counts sorted by descending frequency. Skills
// with equal counts keep the order in which they were first seen while
// scanning projects in stored order.
func TopSkills(profile *models.Profile) []types.SkillCount {
	counts := map[string]int{}
	order := []string{}

	for _, project := range profile.Projects {
		for _, skill := range project.Skills {
			name := strings.ToLower(strings.TrimSpace(skill))
			if name == "" {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	result := make([]types.SkillCount, 0, len(order))
	for _, name := range order {
		result = append(result, types.SkillCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}
