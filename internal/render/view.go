package render

import "github.com/NoorJehan20/CareerCompass-FYP/internal/resume"

type view struct {
	FirstName string
	LastName  string
	Title     string
	Email     string
	Phone     string
	Address   string
	Summary   string

	Experience []experienceView
	Education  []educationView
	Skills     []resume.Skill
	Projects   []resume.Project
	Interests  []string
}

type experienceView struct {
	Role        string
	Company     string
	Location    string
	Duration    string
	Description []string
}

type educationView struct {
	School      string
	Degree      string
	Location    string
	Duration    string
	Description string
}

// Placeholders for user-supplied list entries with blank fields.
var (
	entryExperience = experienceView{
		Role:        "Role",
		Company:     "Company",
		Location:    "Location",
		Duration:    "Period",
		Description: []string{"Description"},
	}
	entryEducation = educationView{
		Degree:   "Degree",
		Location: "Institute Location",
		Duration: "Year",
	}
)

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// resolve fills every blank field of doc from sample.
func resolve(doc resume.Document, sample view) view {
	pi := doc.PersonalInfo
	v := view{
		FirstName: or(pi.Name, sample.FirstName),
		LastName:  or(pi.LastName, sample.LastName),
		Title:     or(pi.Title, sample.Title),
		Email:     or(pi.Email, sample.Email),
		Phone:     or(pi.Phone, sample.Phone),
		Address:   or(pi.Address, sample.Address),
		Summary:   or(pi.Summary, sample.Summary),
		Skills:    doc.Skills,
		Projects:  doc.Projects,
		Interests: doc.Interests,
	}

	if len(doc.Experience) == 0 {
		v.Experience = sample.Experience
	}
	for _, e := range doc.Experience {
		ev := experienceView{
			Role:        or(e.Role, entryExperience.Role),
			Company:     or(e.Company, entryExperience.Company),
			Location:    or(e.Location, or(pi.Address, entryExperience.Location)),
			Duration:    or(e.Duration, entryExperience.Duration),
			Description: e.Description,
		}
		if len(ev.Description) == 0 {
			ev.Description = entryExperience.Description
		}
		v.Experience = append(v.Experience, ev)
	}

	if len(doc.Education) == 0 {
		v.Education = sample.Education
	}
	for _, e := range doc.Education {
		v.Education = append(v.Education, educationView{
			School:      e.School,
			Degree:      or(e.Degree, entryEducation.Degree),
			Location:    or(e.Location, entryEducation.Location),
			Duration:    or(e.Duration, entryEducation.Duration),
			Description: e.Description,
		})
	}

	if len(v.Skills) == 0 {
		v.Skills = sample.Skills
	}
	if len(v.Interests) == 0 {
		v.Interests = sample.Interests
	}
	return v
}
