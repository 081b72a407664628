package profile

// Profile is the student metadata scraped from the Moodle portal.
type Profile struct {
	FullName       string  `json:"fio"`
	Group          string  `json:"group"`
	Course         string  `json:"course"`
	Rating         float64 `json:"rating"`
	AvatarInitials string  `json:"avatar_initials"`
}

// DefaultName is shown when the dashboard has no user menu.
const DefaultName = "Студент"
