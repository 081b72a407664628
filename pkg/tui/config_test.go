package tui

import (
	"strings"
	"testing"

	"sevsuctl/pkg/config"

	"github.com/charmbracelet/lipgloss"
)

func TestValidateSemester(t *testing.T) {
	for _, ok := range []string{"", "25-26", " 25-26 "} {
		if err := ValidateSemester(ok); err != nil {
			t.Errorf("expected %q to be accepted, got %v", ok, err)
		}
	}
	for _, bad := range []string{"2025", "25/26", "25-2"} {
		if ValidateSemester(bad) == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateHex(t *testing.T) {
	if ValidateHex("#FF00FF") != nil {
		t.Errorf("expected a hex code to be accepted")
	}
	if ValidateHex("FF00FF") == nil {
		t.Errorf("expected missing # to be rejected")
	}
}

func TestDescribeConfig(t *testing.T) {
	out := DescribeConfig(&config.AppConfig{Login: "ivanov.ii", ExportFormat: "xlsx"})

	for _, want := range []string{"Логин: ivanov.ii", "Семестр: по дате", "Формат экспорта: xlsx", "Цвет: 33"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestGetTheme_UsesSavedAccent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	if err := config.Save(&config.AppConfig{AccentColor: "205"}); err != nil {
		t.Fatal(err)
	}

	if GetTheme() == nil {
		t.Fatal("expected a theme")
	}
	if got := accentStyle.GetForeground(); got != lipgloss.Color("205") {
		t.Errorf("expected accent 205, got %v", got)
	}
}
