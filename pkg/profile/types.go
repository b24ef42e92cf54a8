package profile

import "encoding/json"

// Required top-level keys of a profile document, in load order.
//
//nolint:gochecknoglobals // fixed document contract
var RequiredKeys = []string{
	"personal_info",
	"education",
	"skills",
	"experience_data",
	"extras_pool",
	"course_pool",
	"additional_info",
}

// Profile is the loaded personal dataset. It is built once by Load and shared
// read-only by every batch row; nothing in this module mutates it after load.
type Profile struct {
	PersonalInfo PersonalInfo        `json:"personal_info"`
	Education    []Education         `json:"education"`
	Skills       Skills              `json:"skills"`
	Experience   []Experience        `json:"experience_data"`
	Extras       ExtrasPool          `json:"extras_pool"`
	Courses      map[string][]string `json:"course_pool"`
	Additional   AdditionalInfo      `json:"additional_info"`

	// raw keeps each top-level block as it appeared in the source document so
	// the prompt can hand the generation service every field, including ones
	// this struct does not model.
	raw map[string]json.RawMessage
}

// PersonalInfo holds the contact block.
type PersonalInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
}

// Education is one school entry.
type Education struct {
	School   string `json:"school"`
	Location string `json:"location"`
	Degree   string `json:"degree"`
	GPA      string `json:"gpa,omitempty"`
	Date     string `json:"date"`
}

// Skills groups skill sets.
type Skills struct {
	Technical      []string `json:"technical"`
	Other          []string `json:"other"`
	Certifications []string `json:"certifications"`
}

// Experience is one employment entry.
type Experience struct {
	Employer string   `json:"employer"`
	Role     string   `json:"role"`
	Location string   `json:"location"`
	Dates    string   `json:"dates"`
	Bullets  []string `json:"bullets"`
}

// PoolEntry is a project or competition candidate. Keywords are selection
// metadata only and never belong in generated output.
type PoolEntry struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Bullets  []string `json:"bullets"`
}

// ExtrasPool holds the candidate projects and competitions.
type ExtrasPool struct {
	Projects     []PoolEntry `json:"projects"`
	Competitions []PoolEntry `json:"competitions"`
}

// AdditionalInfo is emitted only when few extras are selected.
type AdditionalInfo struct {
	Languages []string `json:"languages"`
	Interests []string `json:"interests"`
	Hobbies   []string `json:"hobbies"`
}
