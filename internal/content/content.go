package content

// Site is everything the portfolio page shows for one language.
type Site struct {
	Profile  Profile         `yaml:"profile"`
	Hero     Hero            `yaml:"hero"`
	About    About           `yaml:"about"`
	Contact  ContactInfo     `yaml:"contact"`
	Footer   Footer          `yaml:"footer"`
	Language string          `yaml:"-"`
	Nav      []NavItem       `yaml:"nav"`
	Skills   []SkillCategory `yaml:"skills"`
	Stats    []Stat          `yaml:"stats"`
	Projects []Project       `yaml:"projects"`
}

type Profile struct {
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
}

// Hero is the banner at the top of the page.
type Hero struct {
	Greeting  string   `yaml:"greeting"`
	Highlight string   `yaml:"highlight"`
	Intro     string   `yaml:"intro"`
	Tech      []string `yaml:"tech"`
}

type About struct {
	Intro   string `yaml:"intro"`
	Journey string `yaml:"journey"`
	Cards   []Card `yaml:"cards"`
}

// Card is one of the focus areas on the about section.
type Card struct {
	Icon        string `yaml:"icon"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type SkillCategory struct {
	Name   string  `yaml:"name"`
	Icon   string  `yaml:"icon"`
	Skills []Skill `yaml:"skills"`
}

// Skill is a named proficiency. Level is a percentage.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Stat is a headline figure under the skills grid, such as "5+ years".
type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	GitHubURL   string   `yaml:"github_url"`
	LiveURL     string   `yaml:"live_url"`
	Tech        []string `yaml:"tech"`
}

type ContactInfo struct {
	Description string       `yaml:"description"`
	Social      []SocialLink `yaml:"social"`
}

// SocialLink is an external profile. IconPath is SVG path data drawn in a
// 24x24 view box.
type SocialLink struct {
	Label    string `yaml:"label"`
	URL      string `yaml:"url"`
	IconPath string `yaml:"icon_path"`
}

type NavItem struct {
	Label  string `yaml:"label"`
	Anchor string `yaml:"anchor"`
}

type Footer struct {
	Text string `yaml:"text"`
}

// CVAsset describes the downloadable résumé.
type CVAsset struct {
	Path         string
	DownloadName string
}

// CV is the résumé linked from the hero and contact sections.
var CV = CVAsset{
	Path:         "/cv-resume.pdf",
	DownloadName: "Zaw-Moe-Thet-CV.pdf",
}
