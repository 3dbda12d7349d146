package models

import "time"

// Domain models for the SkillSphere backend. Users live in the relational
// identity store; roadmap records live in the document-oriented artifact
// store and reference their owner by a copied id only.

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
	Updated      int64  `json:"updated" db:"updated"`
}

// RoadmapStep is one step of a generated career roadmap. Step numbers within
// a roadmap form a contiguous 1..N sequence.
type RoadmapStep struct {
	Step        int      `json:"step"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

// RoadmapRequest is the caller input that produced a roadmap. It is only
// persisted as part of a RoadmapRecord.
type RoadmapRequest struct {
	CurrentRole   string   `json:"current_role"`
	DesiredRole   string   `json:"desired_role"`
	CurrentSkills []string `json:"current_skills"`
}

// RoadmapRecord is the durable artifact: immutable once created, owned by a
// single user. Regeneration always produces a new record under a new id.
type RoadmapRecord struct {
	ID        string         `json:"id"`
	OwnerID   int64          `json:"owner_id"`
	Request   RoadmapRequest `json:"request"`
	Steps     []RoadmapStep  `json:"roadmap"`
	CreatedAt time.Time      `json:"created_at"`
}

type Experience struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Summary string `json:"summary"`
}

type Education struct {
	Degree         string `json:"degree"`
	University     string `json:"university"`
	GraduationYear *int   `json:"graduation_year,omitempty"`
}

// SkillProfile is the structured extraction of a resume. Category keys are
// non-empty; skill lists and the experience/education sequences are always
// present, possibly empty, so consumers never branch on missing keys. This
// value is handed back to the client and never persisted.
type SkillProfile struct {
	Skills     map[string][]string `json:"skills"`
	Experience []Experience        `json:"experience"`
	Education  []Education         `json:"education"`
}

// Schema is a stored JSON schema used to validate model output.
type Schema struct {
	ID          int64  `json:"id" db:"id"`
	Version     string `json:"version" db:"version"`
	Description string `json:"description" db:"description"`
	SchemaJSON  string `json:"schema_json" db:"schema_json"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}

// Template is a stored prompt template, optionally bound to a schema version.
type Template struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Version     string  `json:"version" db:"version"`
	TemplateTxt string  `json:"template_text" db:"template_text"`
	SchemaVer   *string `json:"schema_version,omitempty" db:"schema_version"`
	Metadata    *string `json:"metadata,omitempty" db:"metadata"`
	Created     int64   `json:"created" db:"created"`
	Updated     int64   `json:"updated" db:"updated"`
}
