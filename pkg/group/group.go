package group

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NotFound is returned by ExtractCode when there is no text to look at.
const NotFound = "Не найдено"

// DefaultCourse is used whenever the course cannot be derived from a group code.
const DefaultCourse = "1 курс"

// codePattern matches SevSU group names such as "ИВТ/б-22-1-о".
var codePattern = regexp.MustCompile(`[А-ЯA-Z]{1,6}/[а-яa-z]{1,2}-\d{2}-\d-?[а-яa-z]?`)

// yearPattern picks the two-digit enrollment year out of a group code.
var yearPattern = regexp.MustCompile(`-(\d{2})[-\s]`)

// ExtractCode returns the first group code found anywhere in text.
// If nothing matches, the trimmed text is returned as is.
func ExtractCode(text string) string {
	if text == "" {
		return NotFound
	}
	if match, ok := FindCode(text); ok {
		return match
	}
	return strings.TrimSpace(text)
}

// FindCode reports the first group code in text, if any.
func FindCode(text string) (string, bool) {
	match := codePattern.FindString(text)
	return match, match != ""
}

// CalculateCourse derives the current course ("2 курс") from a group code.
func CalculateCourse(code string) string {
	return CourseAt(code, time.Now())
}

// CourseAt derives the course as of now. The academic year rolls over in September.
func CourseAt(code string, now time.Time) string {
	m := yearPattern.FindStringSubmatch(code)
	if len(m) < 2 {
		return DefaultCourse
	}

	yy, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultCourse
	}

	course := now.Year() - (2000 + yy)
	if now.Month() >= time.September {
		course++
	}

	if course < 1 || course > 6 {
		return DefaultCourse
	}
	return fmt.Sprintf("%d курс", course)
}
