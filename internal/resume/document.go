// Package resume defines the normalized resume record shared by the builder,
// the analyzer and the template renderer.
package resume

import "strings"

// MaxLevel is the number of slots in a skill proficiency indicator.
const MaxLevel = 5

// DefaultLevel is given to skills typed into the builder.
const DefaultLevel = 2

type PersonalInfo struct {
	Name       string `json:"name"`
	LastName   string `json:"lastName,omitempty"`
	Title      string `json:"currentRole"`
	Experience string `json:"experience"` // e.g. "3 years"
	Education  string `json:"education"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Summary    string `json:"summary,omitempty"`
}

// Skill carries both the parser's label/percentage and the derived 0-5 level.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Label    string `json:"label,omitempty"`
	Progress int    `json:"progress,omitempty"`
}

type Experience struct {
	Role        string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

type Education struct {
	School      string `json:"school"`
	Degree      string `json:"degree,omitempty"`
	Location    string `json:"location,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

type Certification struct {
	Name string `json:"name"`
	Year string `json:"year"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Document is the normalized resume. Renderers treat it as read-only.
type Document struct {
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Skills         []Skill         `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects,omitempty"`
	Interests      []string        `json:"interests,omitempty"`
}

// Empty is the document returned when nothing could be parsed.
func Empty() Document {
	return Document{
		Skills:         []Skill{},
		Experience:     []Experience{},
		Education:      []Education{},
		Certifications: []Certification{},
	}
}

// IsEmpty reports whether the document carries no user data at all.
func (d Document) IsEmpty() bool {
	return d.PersonalInfo == (PersonalInfo{}) &&
		len(d.Skills) == 0 && len(d.Experience) == 0 && len(d.Education) == 0 &&
		len(d.Certifications) == 0 && len(d.Projects) == 0 && len(d.Interests) == 0
}

// Draft is the resume builder form as the user fills it in.
type Draft struct {
	Name        string            `json:"name"`
	LastName    string            `json:"lastName"`
	Title       string            `json:"title"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Location    string            `json:"location"`
	Summary     string            `json:"summary"`
	Experiences []DraftExperience `json:"experiences"`
	Education   string            `json:"education"`
	Skills      string            `json:"skills"` // comma separated
}

type DraftExperience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Document converts the form into a resume. Experience entries inherit the
// form's location; skills get DefaultLevel.
func (d Draft) Document() Document {
	doc := Document{
		PersonalInfo: PersonalInfo{
			Name:     strings.TrimSpace(d.Name),
			LastName: strings.TrimSpace(d.LastName),
			Title:    strings.TrimSpace(d.Title),
			Email:    strings.TrimSpace(d.Email),
			Phone:    strings.TrimSpace(d.Phone),
			Address:  strings.TrimSpace(d.Location),
			Summary:  strings.TrimSpace(d.Summary),
		},
		Skills: SplitSkills(d.Skills),
	}
	for _, e := range d.Experiences {
		exp := Experience{
			Role:     e.Role,
			Company:  e.Company,
			Location: doc.PersonalInfo.Address,
			Duration: e.Period,
		}
		if e.Description != "" {
			exp.Description = []string{e.Description}
		}
		doc.Experience = append(doc.Experience, exp)
	}
	if edu := strings.TrimSpace(d.Education); edu != "" {
		doc.Education = []Education{{School: edu}}
	}
	return doc
}

// SplitSkills turns "Go, SQL ,Docker" into skills at DefaultLevel.
func SplitSkills(s string) []Skill {
	var skills []Skill
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			skills = append(skills, Skill{Name: name, Level: DefaultLevel})
		}
	}
	return skills
}

// Sample is shown by the analyzer until a resume has been uploaded.
func Sample() Document {
	return Document{
		PersonalInfo: PersonalInfo{
			Name:       "Jane Doe",
			Title:      "Junior Web Developer",
			Experience: "3 years",
			Education:  "B.Tech Computer Science (2022)",
			Email:      "jane.doe@example.com",
			Phone:      "+123456789",
			Address:    "123 Main St, City",
		},
		Skills: []Skill{
			{Name: "HTML/CSS", Label: "Intermediate", Progress: 80, Level: 4},
			{Name: "JavaScript", Label: "Intermediate", Progress: 70, Level: 4},
			{Name: "React Basic", Label: "Intermediate", Progress: 60, Level: 3},
			{Name: "SQL Basic", Label: "Basic", Progress: 50, Level: 3},
			{Name: "UI/UX", Label: "Basic", Progress: 40, Level: 2},
		},
		Experience: []Experience{{
			Role:        "Junior Web Developer",
			Company:     "Tech Solutions Ltd.",
			Duration:    "2021 - Present",
			Description: []string{"Worked on frontend development with React and CSS"},
		}},
		Education: []Education{},
		Certifications: []Certification{
			{Name: "AWS Certified Developer", Year: "2023"},
			{Name: "React Professional Course", Year: "2022"},
		},
	}
}
