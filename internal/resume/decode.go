package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decode normalizes the parser's loosely shaped JSON. Unknown fields are
// ignored, strings and numbers are interchangeable, and sections may be
// missing, null, a single object or a bare string.
func Decode(raw []byte) (Document, error) {
	var in struct {
		PersonalInfo   map[string]json.RawMessage `json:"personalInfo"`
		Skills         json.RawMessage            `json:"skills"`
		Experience     json.RawMessage            `json:"experience"`
		Education      json.RawMessage            `json:"education"`
		Certifications json.RawMessage            `json:"certifications"`
		Projects       json.RawMessage            `json:"projects"`
		Interests      json.RawMessage            `json:"interests"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return Document{}, fmt.Errorf("decode resume: %w", err)
	}

	doc := Empty()
	p := fields(in.PersonalInfo)
	doc.PersonalInfo = PersonalInfo{
		Name:       p.first("name", "fullName", "firstName"),
		LastName:   p.first("lastName"),
		Title:      p.first("currentRole", "title", "position"),
		Experience: p.first("experience"),
		Education:  p.first("education"),
		Email:      p.first("email"),
		Phone:      p.first("phone"),
		Address:    p.first("address", "location"),
		Summary:    p.first("summary", "about"),
	}

	for _, item := range list(in.Skills) {
		if s, ok := decodeSkill(item); ok {
			doc.Skills = append(doc.Skills, s)
		}
	}
	for _, item := range list(in.Experience) {
		f := fields(object(item))
		exp := Experience{
			Role:        f.first("title", "role", "position"),
			Company:     f.first("company", "organization"),
			Location:    f.first("location"),
			Duration:    f.first("duration", "period", "dates"),
			Description: f.lines("description", "responsibilities"),
		}
		if exp.Role != "" || exp.Company != "" {
			doc.Experience = append(doc.Experience, exp)
		}
	}
	for _, item := range list(in.Education) {
		if s, ok := scalar(item); ok {
			if s != "" {
				doc.Education = append(doc.Education, Education{School: s})
			}
			continue
		}
		f := fields(object(item))
		edu := Education{
			School:      f.first("school", "institution", "university"),
			Degree:      f.first("degree", "qualification"),
			Location:    f.first("location"),
			Duration:    f.first("duration", "year", "period"),
			Description: f.first("description"),
		}
		if edu.School != "" || edu.Degree != "" {
			doc.Education = append(doc.Education, edu)
		}
	}
	for _, item := range list(in.Certifications) {
		if s, ok := scalar(item); ok {
			if s != "" {
				doc.Certifications = append(doc.Certifications, Certification{Name: s})
			}
			continue
		}
		f := fields(object(item))
		if c := (Certification{Name: f.first("name", "title"), Year: f.first("year", "date")}); c.Name != "" {
			doc.Certifications = append(doc.Certifications, c)
		}
	}
	for _, item := range list(in.Projects) {
		if s, ok := scalar(item); ok {
			if s != "" {
				doc.Projects = append(doc.Projects, Project{Name: s})
			}
			continue
		}
		f := fields(object(item))
		if pr := (Project{Name: f.first("name", "title"), Description: f.first("description")}); pr.Name != "" {
			doc.Projects = append(doc.Projects, pr)
		}
	}
	for _, item := range list(in.Interests) {
		if s, ok := scalar(item); ok && s != "" {
			doc.Interests = append(doc.Interests, s)
		}
	}
	return doc, nil
}

// LevelFromProgress maps a 0-100 percentage onto the 0-5 indicator.
func LevelFromProgress(progress int) int {
	return clamp(int(math.Round(float64(progress)/20)), 0, MaxLevel)
}

func decodeSkill(raw json.RawMessage) (Skill, bool) {
	if s, ok := scalar(raw); ok {
		if s = strings.TrimSpace(s); s == "" {
			return Skill{}, false
		}
		return Skill{Name: s, Level: DefaultLevel}, true
	}
	f := fields(object(raw))
	s := Skill{Name: f.first("name", "skill")}
	if s.Name == "" {
		return Skill{}, false
	}
	level := f.first("level")
	if progress, err := strconv.Atoi(f.first("progress")); err == nil {
		s.Progress = clamp(progress, 0, 100)
		s.Level = LevelFromProgress(s.Progress)
	}
	if n, err := strconv.Atoi(level); err == nil {
		s.Level = clamp(n, 0, MaxLevel)
	} else {
		s.Label = level
		if s.Progress == 0 {
			s.Level = levelFromLabel(level)
		}
	}
	return s, true
}

func levelFromLabel(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "expert":
		return 5
	case "advanced":
		return 4
	case "intermediate":
		return 3
	case "basic", "beginner":
		return 2
	default:
		return DefaultLevel
	}
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

// list accepts an array, a single value or nothing.
func list(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '[' {
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil {
			return items
		}
		return nil
	}
	if raw[0] == '"' {
		// "Go, SQL" style sections.
		s, _ := scalar(raw)
		var items []json.RawMessage
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				b, _ := json.Marshal(part)
				items = append(items, b)
			}
		}
		return items
	}
	return []json.RawMessage{raw}
}

func object(raw json.RawMessage) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if json.Unmarshal(raw, &m) != nil {
		return nil
	}
	return m
}

// scalar reads a JSON string, number or bool as text.
func scalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case '{', '[':
		return "", false
	case 'n':
		return "", true
	default:
		var n json.Number
		if json.Unmarshal(raw, &n) == nil {
			if f, err := n.Float64(); err == nil && f == math.Trunc(f) {
				return strconv.FormatInt(int64(f), 10), true
			}
			return n.String(), true
		}
		return string(raw), true
	}
}

type fields map[string]json.RawMessage

// first returns the first key holding a non-empty scalar.
func (f fields) first(keys ...string) string {
	for _, k := range keys {
		if s, ok := scalar(f[k]); ok && s != "" {
			return s
		}
	}
	return ""
}

// lines reads a string or a list of strings.
func (f fields) lines(keys ...string) []string {
	for _, k := range keys {
		raw := bytes.TrimSpace(f[k])
		if len(raw) == 0 {
			continue
		}
		if raw[0] == '[' {
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				continue
			}
			var out []string
			for _, it := range items {
				if s, ok := scalar(it); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
			continue
		}
		if s, ok := scalar(raw); ok && s != "" {
			return []string{s}
		}
	}
	return nil
}
