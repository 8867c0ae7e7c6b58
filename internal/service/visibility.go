package service

import (
	"strings"
	"time"

	"alertwatch/internal/models"
)

// FilterVisible narrows a set of alerts to what the acting admin may see.
// Superadmins and admins without assigned regions see everything. Otherwise
// an alert is visible when any assigned region is a case-insensitive
// substring of its "name, state, country" location text. An admin whose
// regions match nothing sees nothing.
func FilterVisible(alerts []*models.Alert, res *models.RoleResolution) []*models.Alert {
	if res == nil || res.IsSuperAdmin || res.Record == nil || len(res.Record.AssignedRegions) == 0 {
		return alerts
	}

	regions := make([]string, 0, len(res.Record.AssignedRegions))
	for _, r := range res.Record.AssignedRegions {
		if r = strings.TrimSpace(r); r != "" {
			regions = append(regions, strings.ToLower(r))
		}
	}
	if len(regions) == 0 {
		return alerts
	}

	out := make([]*models.Alert, 0, len(alerts))
	for _, a := range alerts {
		hay := a.LocationText()
		for _, region := range regions {
			if strings.Contains(hay, region) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// StatusFilter values accepted by AlertFilter. "inactive" is the derived
// expired state, not a persisted status.
const (
	StatusFilterActive   = "active"
	StatusFilterResolved = "resolved"
	StatusFilterFalse    = "false"
	StatusFilterInactive = "inactive"
)

// AlertFilter is a conjunction of independent criteria applied over an
// already region-filtered set. Zero values mean "no restriction".
type AlertFilter struct {
	Type    models.AlertType
	Status  string
	Country string
	State   string
	Name    string
	MinLat  *float64
	MaxLat  *float64
	MinLng  *float64
	MaxLng  *float64
}

// Apply keeps the alerts matching every set criterion.
func (f AlertFilter) Apply(alerts []*models.Alert, now time.Time) []*models.Alert {
	out := make([]*models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if f.matches(a, now) {
			out = append(out, a)
		}
	}
	return out
}

func (f AlertFilter) matches(a *models.Alert, now time.Time) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if !f.matchesStatus(a, now) {
		return false
	}
	if f.Country != "" && !containsFold(a.LocationCountry, f.Country) {
		return false
	}
	if f.State != "" && !containsFold(a.LocationState, f.State) {
		return false
	}
	if f.Name != "" && !containsFold(a.LocationName, f.Name) {
		return false
	}
	if f.MinLat != nil && a.Latitude < *f.MinLat {
		return false
	}
	if f.MaxLat != nil && a.Latitude > *f.MaxLat {
		return false
	}
	if f.MinLng != nil && a.Longitude < *f.MinLng {
		return false
	}
	if f.MaxLng != nil && a.Longitude > *f.MaxLng {
		return false
	}
	return true
}

func (f AlertFilter) matchesStatus(a *models.Alert, now time.Time) bool {
	switch f.Status {
	case "":
		return true
	case StatusFilterActive:
		return a.ActiveAt(now)
	case StatusFilterResolved:
		return a.Status == models.AlertStatusResolved
	case StatusFilterFalse:
		return a.Status == models.AlertStatusFalse
	case StatusFilterInactive:
		return a.Expired(now)
	default:
		return true
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
