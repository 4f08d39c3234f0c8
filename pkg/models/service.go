package models

// ServiceOffering is a card on the services page.
type ServiceOffering struct {
	Icon         Icon     `json:"icon" yaml:"icon"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Technologies []string `json:"technologies" yaml:"technologies"`
}

// Feature is a highlight card in the home page's about section.
type Feature struct {
	Icon        Icon   `json:"icon" yaml:"icon"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// SocialLink is a footer link.
type SocialLink struct {
	Icon Icon   `json:"icon" yaml:"icon"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Stat is a highlighted number on the about page.
type Stat struct {
	Number string `json:"number" yaml:"number"`
	Text   string `json:"text" yaml:"text"`
}

// Profile is the owner's identity as shown in the hero and about sections.
type Profile struct {
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	Tagline  string `json:"tagline" yaml:"tagline"`
	About    string `json:"about" yaml:"about"`
	Email    string `json:"email" yaml:"email"`
	GitHub   string `json:"github" yaml:"github"`
	Portrait string `json:"portrait" yaml:"portrait"`
	Stats    []Stat `json:"stats" yaml:"stats"`
}
