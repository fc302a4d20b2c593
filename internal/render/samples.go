package render

import (
	"strings"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/resume"
)

var minimalistSample = view{
	FirstName: "John",
	Email:     "john.doe@gmail.com",
	Phone:     "111-222-3333",
	Title:     "Front-End Developer",
	Summary:   "I am a front-end developer with more than 3 years of experience writing HTML, CSS, and JS. I'm motivated, result-focused, and seeking a successful team-oriented company with opportunity to grow.",
	Experience: []experienceView{{
		Company:     "KlowdBox",
		Location:    "San Fr, CA",
		Duration:    "Jan 2011 - Feb 2015",
		Role:        "Fr developer",
		Description: []string{"Did this and that"},
	}},
	Education: []educationView{{
		School:      "Sample Institute of Technology",
		Location:    "San Fr, CA",
		Duration:    "Jan 2011 - Feb 2015",
		Degree:      "Fr developer",
		Description: "Did this and that",
	}},
	Skills: []resume.Skill{
		{Name: "Javascript", Level: 2},
		{Name: "CSS", Level: 2},
	},
}

const minimalistCSS = `body{font-family:'Lato',sans-serif;font-size:14px;line-height:26px;color:#222;background:#eee;margin:0;padding-bottom:50px}
.sheet{max-width:700px;background:#fff;margin:50px auto;box-shadow:1px 1px 2px #DAD7D7;border-radius:3px;padding:40px}
.name{font-size:40px;text-transform:uppercase;margin-bottom:5px;font-weight:700}.name span{font-weight:300}
.contact{margin-bottom:20px;color:#999;font-weight:300}.position{font-weight:bold;text-decoration:underline;margin-right:10px}
.section{margin-bottom:40px}.section-title{letter-spacing:2px;color:#54AFE4;font-weight:bold;margin-bottom:10px;text-transform:uppercase}
.row{display:flex;justify-content:space-between;margin-bottom:20px}.left{width:60%}.right{width:39%;text-align:right}.strong{font-weight:bold}
.level{display:flex;gap:3px}.slot{width:20px;height:20px;border-radius:50%;background:#C3DEF3;display:inline-block}.slot.filled{background:#79A9CE}`

var modernSample = view{
	FirstName: "ALEX",
	LastName:  "REED",
	Title:     "UX/UI Designer & Web Developer",
	Email:     "alex.reed@creative.com",
	Phone:     "(987) 654-3210",
	Summary:   "Creative and highly motivated designer with 5+ years of experience blending development skills with modern design principles. Passionate about creating intuitive, accessible, and visually stunning digital experiences.",
	Experience: []experienceView{
		{
			Role:     "Lead UX Designer",
			Company:  "Digital Flow Agency",
			Duration: "2021 – Present",
			Location: "San Francisco, CA",
			Description: []string{
				"Led end-to-end design for major client product redesigns, resulting in a 30% increase in user engagement.",
				"Created and maintained the company's design system using Figma, improving development handover efficiency by 40%.",
				"Conducted usability testing and iteration based on quantitative data metrics.",
			},
		},
		{
			Role:     "Front-End Developer",
			Company:  "Startup Labs",
			Duration: "2018 – 2021",
			Location: "Austin, TX",
			Description: []string{
				"Developed responsive user interfaces using React and modern CSS-in-JS solutions.",
				"Collaborated with backend team to implement scalable API integrations.",
			},
		},
	},
	Education: []educationView{{
		School:   "California College of the Arts",
		Degree:   "BFA, Graphic Design & Digital Media",
		Duration: "2014 – 2018",
	}},
	Skills: skillNames("Figma", "Sketch", "Prototyping", "User Research", "React.js", "Tailwind CSS", "A/B Testing"),
}

const modernCSS = `body{font-family:'Roboto',sans-serif;font-size:14px;line-height:1.5;color:#2C3E50;background:#F9F9F9;margin:0;padding:20px}
.sheet{max-width:800px;background:#fff;margin:30px auto;box-shadow:0 10px 30px rgba(0,0,0,.1);border-radius:8px;overflow:hidden}
.header{background:#2C3E50;color:#fff;padding:40px 50px 30px 50px;margin-bottom:30px}
.header h1{font-size:3.5rem;text-transform:uppercase;font-weight:900;line-height:1em;margin:0 0 5px 0}.header h1 span{font-weight:300;color:#00A388}
.title{font-size:1.3rem;font-weight:500;color:#00A388;margin-bottom:15px}.contact{display:flex;gap:25px;font-size:.9rem;color:#DDD}
.main{padding:0 50px 40px 50px}.section{margin-bottom:35px}
.section h2{text-transform:uppercase;letter-spacing:3px;font-size:1.5rem;font-weight:700;border-bottom:2px solid #00A388;padding-bottom:8px;margin-bottom:20px}
.entry{margin-bottom:30px;border-left:3px solid #00A388;padding-left:20px}.entry-head{display:flex;justify-content:space-between;margin-bottom:5px}
.entry h3{margin:0;font-size:1.1rem;font-weight:700}.when{color:#00A388;font-weight:600;font-size:.95rem}.where{font-style:italic;margin-bottom:8px;color:#666}
.chips{display:flex;flex-wrap:wrap;gap:12px}.chip{padding:6px 15px;background:#E8F5E9;border-radius:4px;font-size:13px;font-weight:500;border:1px solid #00A388}`

var professionalSample = view{
	FirstName: "JANE",
	LastName:  "DOE",
	Title:     "Project Management Professional (PMP)",
	Email:     "jane.doe@email.com",
	Phone:     "(555) 123-4567",
	Address:   "123 Professional Dr, New York, NY",
	Summary:   "A highly organized and results-driven Project Manager with 8+ years of experience leading cross-functional teams to successfully deliver large-scale software solutions on time and under budget. Expertise in Agile methodologies, risk management, and stakeholder communication.",
	Experience: []experienceView{
		{
			Role:     "Senior Project Manager",
			Company:  "Innovatech Solutions",
			Duration: "Jan 2020 – Present",
			Location: "New York, NY",
			Description: []string{
				"Directed a portfolio of 15+ projects totaling $10M, consistently achieving a 98% on-time delivery rate.",
				"Implemented a new risk mitigation strategy that reduced project delays by 25% across the organization.",
				"Mentored a team of 5 junior project managers, improving overall team efficiency and skill adoption.",
			},
		},
		{
			Role:     "Project Coordinator",
			Company:  "TechBridge Consulting",
			Duration: "Aug 2016 – Dec 2019",
			Location: "Boston, MA",
			Description: []string{
				"Managed project timelines, budgets, and scope for key client initiatives.",
				"Facilitated daily stand-ups, sprint planning, and retrospective meetings.",
			},
		},
	},
	Education: []educationView{
		{School: "New York University (NYU)", Degree: "M.S. Project Management", Duration: "2015"},
		{School: "State University of New York (SUNY)", Degree: "B.A. Business Administration", Duration: "2011"},
	},
	Skills: skillNames("Agile/Scrum", "PMP Certified", "JIRA", "Risk Management", "Budgeting", "Stakeholder Communication"),
}

const professionalCSS = `body{font-family:'Helvetica Neue',Arial,sans-serif;font-size:14px;line-height:1.6;color:#444;background:#F0F0F0;margin:0}
.sheet{max-width:900px;margin:0 auto;display:flex;background:#fff;box-shadow:0 0 10px rgba(0,0,0,.1);min-height:100vh}
.sidebar{width:35%;padding:40px 25px;background:#0056B3;color:#fff}.sidebar h2{text-transform:uppercase;letter-spacing:2px;font-size:1rem;border-bottom:2px solid rgba(255,255,255,.5);padding-bottom:5px;margin-bottom:15px}
.sidebar p{margin:0 0 5px 0}.sidebar ul{list-style-type:none;padding-left:0;margin:0}.bullet{margin-right:8px;color:#FFC107}.block{margin-bottom:30px}
.content{width:65%;padding:40px}.head{margin-bottom:30px;border-bottom:2px solid #E0E0E0;padding-bottom:20px}
.head h1{font-size:2.8rem;text-transform:uppercase;margin:0;font-weight:700;color:#333}.head h1 span{font-weight:300;color:#0056B3}
.title{font-size:1.2rem;font-weight:600;color:#555;margin:5px 0 15px 0}
.content h2{text-transform:uppercase;letter-spacing:2px;font-size:1.75rem;font-weight:700;color:#333;border-bottom:4px solid #0056B3;padding-bottom:10px;margin-bottom:25px}
.entry{margin-bottom:25px}.entry-head{display:flex;justify-content:space-between;align-items:baseline;margin-bottom:5px}
.entry h3{margin:0;font-size:1.1rem;font-weight:700;color:#333}.when{color:#0056B3;font-weight:600;font-size:.95rem}.where{font-style:italic;margin-bottom:10px;color:#666}`

func skillNames(names ...string) []resume.Skill {
	skills := make([]resume.Skill, len(names))
	for i, n := range names {
		skills[i] = resume.Skill{Name: n, Level: resume.DefaultLevel}
	}
	return skills
}

func fullName(v view) string {
	return strings.TrimSpace(v.FirstName + " " + v.LastName)
}
