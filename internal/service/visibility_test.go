package service

import (
	"testing"
	"time"

	"alertwatch/internal/models"
)

func regionAdmin(regions ...string) *models.RoleResolution {
	return &models.RoleResolution{
		Role:    models.RoleAdmin,
		IsAdmin: true,
		Record:  &models.UserRecord{Role: models.RoleAdmin, AssignedRegions: regions},
	}
}

func TestFilterVisible(t *testing.T) {
	lagos := &models.Alert{ID: "lagos", LocationName: "Ikeja", LocationState: "Lagos State", LocationCountry: "Nigeria"}
	abuja := &models.Alert{ID: "abuja", LocationName: "Garki", LocationState: "FCT", LocationCountry: "Nigeria"}
	accra := &models.Alert{ID: "accra", LocationName: "Osu", LocationState: "Greater Accra", LocationCountry: "Ghana"}
	alerts := []*models.Alert{lagos, abuja, accra}

	tests := []struct {
		name string
		res  *models.RoleResolution
		want []string
	}{
		{
			name: "nil resolution sees all",
			res:  nil,
			want: []string{"lagos", "abuja", "accra"},
		},
		{
			name: "superadmin sees all",
			res:  &models.RoleResolution{Role: models.RoleSuperAdmin, IsAdmin: true, IsSuperAdmin: true, Record: &models.UserRecord{AssignedRegions: []string{"lagos"}}},
			want: []string{"lagos", "abuja", "accra"},
		},
		{
			name: "no assigned regions sees all",
			res:  regionAdmin(),
			want: []string{"lagos", "abuja", "accra"},
		},
		{
			name: "region matches state substring case-insensitively",
			res:  regionAdmin("lagos"),
			want: []string{"lagos"},
		},
		{
			name: "country-level region",
			res:  regionAdmin("Nigeria"),
			want: []string{"lagos", "abuja"},
		},
		{
			name: "multiple regions union",
			res:  regionAdmin("FCT", "ghana"),
			want: []string{"abuja", "accra"},
		},
		{
			name: "no match sees nothing",
			res:  regionAdmin("Nairobi"),
			want: []string{},
		},
		{
			name: "blank regions are ignored",
			res:  regionAdmin("  ", ""),
			want: []string{"lagos", "abuja", "accra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterVisible(alerts, tt.res)
			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("visible = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("visible = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}

func TestAlertFilter(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	f := func(v float64) *float64 { return &v }

	live := &models.Alert{ID: "live", Type: models.AlertTypeType1, Status: models.AlertStatusActive, ExpiresAt: &future, Latitude: 6.5, Longitude: 3.4, LocationName: "Ikeja", LocationState: "Lagos State", LocationCountry: "Nigeria"}
	expired := &models.Alert{ID: "expired", Type: models.AlertTypeType1, Status: models.AlertStatusActive, ExpiresAt: &past, Latitude: 9.0, Longitude: 7.5, LocationState: "FCT", LocationCountry: "Nigeria"}
	resolved := &models.Alert{ID: "resolved", Type: models.AlertTypeType2, Status: models.AlertStatusResolved, ExpiresAt: &future, Latitude: 5.6, Longitude: -0.2, LocationCountry: "Ghana"}
	alerts := []*models.Alert{live, expired, resolved}

	tests := []struct {
		name   string
		filter AlertFilter
		want   []string
	}{
		{"zero filter keeps everything", AlertFilter{}, []string{"live", "expired", "resolved"}},
		{"by type", AlertFilter{Type: models.AlertTypeType2}, []string{"resolved"}},
		{"status active excludes expired", AlertFilter{Status: StatusFilterActive}, []string{"live"}},
		{"status inactive is derived expiry", AlertFilter{Status: StatusFilterInactive}, []string{"expired"}},
		{"status resolved", AlertFilter{Status: StatusFilterResolved}, []string{"resolved"}},
		{"country substring", AlertFilter{Country: "nigeria"}, []string{"live", "expired"}},
		{"state substring", AlertFilter{State: "lagos"}, []string{"live"}},
		{"name substring", AlertFilter{Name: "ikeja"}, []string{"live"}},
		{"bounding box", AlertFilter{MinLat: f(6.0), MaxLat: f(7.0), MinLng: f(3.0), MaxLng: f(4.0)}, []string{"live"}},
		{"criteria are conjunctive", AlertFilter{Type: models.AlertTypeType1, Country: "nigeria", Status: StatusFilterActive}, []string{"live"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(alerts, now)
			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("matched = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("matched = %v, want %v", ids, tt.want)
				}
			}
		})
	}
}
