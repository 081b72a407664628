package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Endpoints is the upstream configuration injected into every component.
type Endpoints struct {
	// LoginURL is the timetable entry point that redirects to SSO.
	LoginURL string
	// ScheduleURL is the timetable query endpoint.
	ScheduleURL string
	// SecondServiceURL is the IOT app shell whose API traffic carries a bearer token.
	SecondServiceURL        string
	SecondServiceProfileURL string
	SecondServiceAPIHost    string
	// PortalLoginURL is the Moodle login page used for profile scraping.
	PortalLoginURL string

	SemesterCode string
	ChromePath   string

	RequestTimeout       time.Duration
	FormTimeout          time.Duration
	AuthTimeout          time.Duration
	SecondServiceTimeout time.Duration
	CacheTTL             time.Duration
}

// DefaultEndpoints returns the production SevSU endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		LoginURL:                "https://timetable.sevsu.ru/timetablestudent",
		ScheduleURL:             "https://timetable.sevsu.ru/napi/StudentsRaspGet",
		SecondServiceURL:        "https://iot.sevsu.ru/",
		SecondServiceProfileURL: "https://iot.sevsu.ru/api/profile?expand=cohorts.option",
		SecondServiceAPIHost:    "sevsu.ru",
		PortalLoginURL:          "https://do.sevsu.ru/login/index.php",
		SemesterCode:            SemesterCode(time.Now()),
		RequestTimeout:          20 * time.Second,
		FormTimeout:             20 * time.Second,
		AuthTimeout:             20 * time.Second,
		SecondServiceTimeout:    15 * time.Second,
		CacheTTL:                10 * time.Minute,
	}
}

// LoadEndpoints reads SEVSU_* overrides from the environment. A .env file in
// the working directory is loaded first if present; real environment
// variables take precedence over it.
func LoadEndpoints() (Endpoints, error) {
	_ = godotenv.Load()

	e := DefaultEndpoints()
	e.LoginURL = getEnv("SEVSU_LOGIN_URL", e.LoginURL)
	e.ScheduleURL = getEnv("SEVSU_SCHEDULE_URL", e.ScheduleURL)
	e.SecondServiceURL = getEnv("SEVSU_IOT_URL", e.SecondServiceURL)
	e.SecondServiceProfileURL = getEnv("SEVSU_IOT_PROFILE_URL", e.SecondServiceProfileURL)
	e.SecondServiceAPIHost = getEnv("SEVSU_IOT_API_HOST", e.SecondServiceAPIHost)
	e.PortalLoginURL = getEnv("SEVSU_PORTAL_LOGIN_URL", e.PortalLoginURL)
	e.SemesterCode = getEnv("SEVSU_SEMESTER", e.SemesterCode)
	e.ChromePath = getEnv("SEVSU_CHROME_PATH", e.ChromePath)

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SEVSU_REQUEST_TIMEOUT", &e.RequestTimeout},
		{"SEVSU_FORM_TIMEOUT", &e.FormTimeout},
		{"SEVSU_AUTH_TIMEOUT", &e.AuthTimeout},
		{"SEVSU_IOT_TIMEOUT", &e.SecondServiceTimeout},
		{"SEVSU_CACHE_TTL", &e.CacheTTL},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, *d.dst)
		if err != nil {
			return Endpoints{}, err
		}
		*d.dst = v
	}

	return e, nil
}

// SemesterCode returns the academic year code ("26-27") the timetable API
// expects. The academic year starts in September.
func SemesterCode(now time.Time) string {
	start := now.Year()
	if now.Month() < time.September {
		start--
	}
	return fmt.Sprintf("%02d-%02d", start%100, (start+1)%100)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("15s") or plain seconds ("15").
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
