package schedule

// Lesson is one scheduled class in canonical form.
type Lesson struct {
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Type    string `json:"type"`
	Room    string `json:"room"`
	Teacher string `json:"teacher"`
	Group   string `json:"group"`
}

// Day holds the lessons of one weekday. DateString is "DD.MM" or empty.
type Day struct {
	Day        string   `json:"day"`
	DateString string   `json:"date_string"`
	Lessons    []Lesson `json:"lessons"`
}

// Week is a normalized week, days ordered Monday to Sunday.
type Week struct {
	Week int   `json:"week"`
	Year int   `json:"year"`
	Days []Day `json:"days"`
}

// Weekdays lists the day names used as keys by the timetable API, Monday first.
var Weekdays = [7]string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}
