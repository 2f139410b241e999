package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseBool interprets a classification response. Only the literal token
// "true" (any case, surrounding whitespace ignored) counts as true.
func ParseBool(resp string) bool {
	return strings.EqualFold(strings.TrimSpace(resp), "true")
}

// ParseFocusAreas splits a comma-separated response into trimmed, non-empty areas.
func ParseFocusAreas(resp string) []string {
	var areas []string
	for _, part := range strings.Split(resp, ",") {
		if area := strings.TrimSpace(part); area != "" {
			areas = append(areas, area)
		}
	}
	return areas
}

// skillKeywords is scanned, in order, when skill extraction yields nothing usable.
var skillKeywords = []string{"Python", "TensorFlow", "PyTorch", "Machine Learning", "AI", "NLP", "Computer Vision"}

// KeywordSkills returns the entries of the fixed keyword list that occur in
// description, compared case-insensitively.
func KeywordSkills(description string) []string {
	lower := strings.ToLower(description)
	var skills []string
	for _, kw := range skillKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			skills = append(skills, kw)
		}
	}
	return skills
}

var skillsObject = regexp.MustCompile(`\{[^}]*"required_skills"[^}]*\}`)

const skillsSchemaJSON = `{
  "type": "object",
  "properties": {
    "required_skills":  {"type": "array", "items": {"type": "string"}},
    "preferred_skills": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["required_skills"]
}`

var skillsSchema = mustSchema(skillsSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return s
}

type skillsPayload struct {
	Required  []string `json:"required_skills"`
	Preferred []string `json:"preferred_skills"`
}

// ParseSkills extracts required and preferred skills from a skill-extraction
// response. A response that never mentions required_skills yields no skills.
// A response that mentions it but carries no valid object falls back to
// KeywordSkills(description) for the required list.
func ParseSkills(resp, description string) (required, preferred []string) {
	if !strings.Contains(resp, "required_skills") {
		return nil, nil
	}

	match := skillsObject.FindString(stripCodeFence(resp))
	if match == "" {
		return KeywordSkills(description), nil
	}

	result, err := skillsSchema.Validate(gojsonschema.NewStringLoader(match))
	if err != nil || !result.Valid() {
		return KeywordSkills(description), nil
	}

	var payload skillsPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return KeywordSkills(description), nil
	}
	return payload.Required, payload.Preferred
}

// stripCodeFence removes a surrounding markdown code block, if any.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
