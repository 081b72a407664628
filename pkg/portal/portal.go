// Package portal holds the values shared by the SevSU login paths.
package portal

import "strings"

// Credentials are the SSO login and password. They live for one login
// attempt and are never persisted.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// tokenSeparator joins the timetable and IOT tokens in the wire form.
const tokenSeparator = "|"

// SessionToken is what a successful SSO login yields. Both values are opaque.
// IOTToken is empty when the second service's bearer token was not observed.
type SessionToken struct {
	TimetableToken string `json:"timetable_token"`
	IOTToken       string `json:"iot_token,omitempty"`
}

// String returns the composite "timetable|iot" form handed to clients.
func (t SessionToken) String() string {
	return t.TimetableToken + tokenSeparator + t.IOTToken
}

// Empty reports whether no timetable session was obtained.
func (t SessionToken) Empty() bool {
	return t.TimetableToken == ""
}

// ParseSessionToken accepts both the composite form and a bare timetable token.
func ParseSessionToken(s string) SessionToken {
	s = strings.TrimSpace(s)
	timetable, iot, found := strings.Cut(s, tokenSeparator)
	if !found {
		return SessionToken{TimetableToken: s}
	}
	return SessionToken{TimetableToken: timetable, IOTToken: iot}
}
