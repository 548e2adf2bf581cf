package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for credentials login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a partial profile update. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Name       string         `json:"name,omitempty"`
	Email      string         `json:"email,omitempty"`
	Bio        *string        `json:"bio,omitempty"`
	Location   *string        `json:"location,omitempty"`
	Website    *string        `json:"website,omitempty"`
	Github     *string        `json:"github,omitempty"`
	Linkedin   *string        `json:"linkedin,omitempty"`
	Skills     interface{}    `json:"skills,omitempty"`
	Education  []EducationIn  `json:"education,omitempty"`
	Experience []ExperienceIn `json:"experience,omitempty"`
}

// EducationIn mirrors models.Education for request bodies.
type EducationIn struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// ExperienceIn mirrors models.Experience for request bodies.
type ExperienceIn struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// ProjectInput represents the request body for creating or partially
// updating a project. Skills may arrive either as a list of strings or
// as a single comma-separated string.
type ProjectInput struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Skills      interface{} `json:"skills,omitempty"`
	GithubURL   *string     `json:"githubUrl,omitempty"`
	DemoURL     *string     `json:"demoUrl,omitempty"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
}

// ProfileAction is the dispatch body accepted by POST /profile.
type ProfileAction struct {
	Action      string       `json:"action"`
	ProjectID   string       `json:"projectId,omitempty"`
	ProjectData ProjectInput `json:"projectData"`
}

// SkillCount is one entry of the ranked skill frequency list.
type SkillCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
