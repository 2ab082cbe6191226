package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// PersonalInfo carries the fields used when filling application forms.
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Preferences extends the built-in role filter and records preferred
// locations. Roles only widen the accepted set, never narrow it.
type Preferences struct {
	Roles     []string `json:"roles"`
	Locations []string `json:"locations"`
}

// Profile is the user_profile.json document.
type Profile struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Preferences  Preferences  `json:"preferences"`
}

// DefaultProfile is written to disk on first run so the user has a file to edit.
func DefaultProfile() *Profile {
	return &Profile{
		Preferences: Preferences{
			Roles: []string{
				"software engineer", "backend", "frontend", "full stack",
				"ai engineer", "machine learning", "data engineer", "sde", "swe",
			},
			Locations: []string{"United States", "Remote"},
		},
	}
}

// LoadProfile reads the user profile at path. When the file does not exist
// it writes the default profile there and returns it.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		p := DefaultProfile()
		out, merr := json.MarshalIndent(p, "", "  ")
		if merr != nil {
			return nil, fmt.Errorf("marshal default profile: %w", merr)
		}
		if werr := os.WriteFile(path, out, 0o644); werr != nil {
			return nil, fmt.Errorf("write default profile: %w", werr)
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return &p, nil
}

// DBPath resolves the sqlite database location, defaulting next to the binary.
func DBPath() string {
	if p := os.Getenv("JOB_DB_PATH"); p != "" {
		return p
	}
	return "applications.db"
}

// AdzunaCredentials returns the Adzuna app id and key, or ok=false when the
// source should be skipped (unset or still the placeholder value).
func AdzunaCredentials() (appID, appKey string, ok bool) {
	appID = os.Getenv("ADZUNA_APP_ID")
	appKey = os.Getenv("ADZUNA_APP_KEY")
	if appID == "" || appKey == "" {
		return "", "", false
	}
	if len(appID) >= 4 && appID[:4] == "YOUR" {
		return "", "", false
	}
	if len(appKey) >= 4 && appKey[:4] == "YOUR" {
		return "", "", false
	}
	return appID, appKey, true
}

// RapidAPIKey returns the JSearch key, or ok=false when the source should be skipped.
func RapidAPIKey() (string, bool) {
	key := os.Getenv("RAPIDAPI_KEY")
	if key == "" || (len(key) >= 4 && key[:4] == "YOUR") {
		return "", false
	}
	return key, true
}
