package prefs

import (
	"context"
	"strconv"
)

const (
	ThemeKey  = "ps_theme"
	VisitsKey = "ps_visits"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme returns the stored theme, dark when unset or unknown.
func Theme(ctx context.Context, s Store) (string, error) {
	v, ok, err := s.Get(ctx, ThemeKey)
	if err != nil {
		return ThemeDark, err
	}
	if !ok || (v != ThemeDark && v != ThemeLight) {
		return ThemeDark, nil
	}
	return v, nil
}

// ToggleTheme flips between dark and light, persists and returns the new theme.
func ToggleTheme(ctx context.Context, s Store) (string, error) {
	current, err := Theme(ctx, s)
	if err != nil {
		return current, err
	}

	next := ThemeLight
	if current == ThemeLight {
		next = ThemeDark
	}
	if err = s.Set(ctx, ThemeKey, next); err != nil {
		return current, err
	}
	return next, nil
}

// RecordVisit increments the visit counter and returns the new count. A
// missing or malformed counter starts over at 1.
func RecordVisit(ctx context.Context, s Store) (int, error) {
	visits := 0
	v, ok, err := s.Get(ctx, VisitsKey)
	if err != nil {
		return 0, err
	}
	if ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			visits = n
		}
	}

	visits++
	if err = s.Set(ctx, VisitsKey, strconv.Itoa(visits)); err != nil {
		return 0, err
	}
	return visits, nil
}

// Visits returns the stored visit count without incrementing it.
func Visits(ctx context.Context, s Store) (int, error) {
	v, ok, err := s.Get(ctx, VisitsKey)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}
