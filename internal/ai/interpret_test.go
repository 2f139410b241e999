package ai

import (
	"reflect"
	"testing"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		resp string
		want bool
	}{
		{"true", true},
		{"True", true},
		{" TRUE \n", true},
		{"false", false},
		{"yes", false},
		{"true.", false},
		{"\"true\"", false},
		{"It is true", false},
		{"", false},
		{"null", false},
	}
	for _, tt := range tests {
		if got := ParseBool(tt.resp); got != tt.want {
			t.Errorf("ParseBool(%q) = %v, want %v", tt.resp, got, tt.want)
		}
	}
}

func TestParseFocusAreas(t *testing.T) {
	tests := []struct {
		resp string
		want []string
	}{
		{"NLP, Computer Vision", []string{"NLP", "Computer Vision"}},
		{" LLMs ,, Healthcare AI ,", []string{"LLMs", "Healthcare AI"}},
		{"", nil},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := ParseFocusAreas(tt.resp); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFocusAreas(%q) = %v, want %v", tt.resp, got, tt.want)
		}
	}
}

func TestKeywordSkills_FixedOrder(t *testing.T) {
	got := KeywordSkills("We use tensorflow and PYTHON every day")
	want := []string{"Python", "TensorFlow"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeywordSkills = %v, want %v", got, want)
	}
}

func TestParseSkills(t *testing.T) {
	const desc = "Experience with Python and TensorFlow required."

	tests := []struct {
		name          string
		resp          string
		wantRequired  []string
		wantPreferred []string
	}{
		{
			name:          "clean JSON",
			resp:          `{"required_skills": ["Python", "LLMs"], "preferred_skills": ["Go"]}`,
			wantRequired:  []string{"Python", "LLMs"},
			wantPreferred: []string{"Go"},
		},
		{
			name:         "fenced JSON with preamble",
			resp:         "Sure!\n```json\n{\"required_skills\": [\"PyTorch\"]}\n```",
			wantRequired: []string{"PyTorch"},
		},
		{
			name:         "malformed JSON falls back to keyword scan",
			resp:         `{"required_skills": [Python, TensorFlow]}`,
			wantRequired: []string{"Python", "TensorFlow"},
		},
		{
			name:         "wrong types fall back to keyword scan",
			resp:         `{"required_skills": "Python"}`,
			wantRequired: []string{"Python", "TensorFlow"},
		},
		{
			name:         "mentioned without object falls back to keyword scan",
			resp:         "required_skills: Python, TensorFlow",
			wantRequired: []string{"Python", "TensorFlow"},
		},
		{
			name: "no mention yields nothing",
			resp: "Python, TensorFlow",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			required, preferred := ParseSkills(tt.resp, desc)
			if !reflect.DeepEqual(required, tt.wantRequired) {
				t.Errorf("required = %v, want %v", required, tt.wantRequired)
			}
			if !reflect.DeepEqual(preferred, tt.wantPreferred) {
				t.Errorf("preferred = %v, want %v", preferred, tt.wantPreferred)
			}
		})
	}
}
