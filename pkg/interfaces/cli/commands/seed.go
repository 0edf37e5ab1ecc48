package commands

import (
	"context"
	"time"

	"github.com/relieflogix/relief/pkg/application/services"
	"github.com/relieflogix/relief/pkg/domain/entities"
)

// seedDemoData populates the coordinator's stores with a small,
// illustrative disaster-relief scenario: unfulfilled needs of varying
// priority and age across several categories, and supplies at varying
// distances and expirations. Used by `relief demo`, and by `relief match`
// and `relief dashboard` when --seed is set (the default).
func seedDemoData(ctx context.Context, c *services.Coordinator, now time.Time) error {
	needs := []struct {
		title, category string
		level            entities.PriorityLevel
		required         int64
		ageHours         float64
		loc              entities.Location
	}{
		{"Drinking water for shelter A", "Water", entities.Critical, 500, 5, entities.Location{Latitude: 10, Longitude: 10, City: "Shelter A"}},
		{"Trauma kits for field hospital", "Medical", entities.Critical, 50, 30, entities.Location{Latitude: 10.2, Longitude: 10.1, City: "Field Hospital"}},
		{"Tents for displaced families", "Shelter", entities.High, 200, 10, entities.Location{Latitude: 9.8, Longitude: 9.9, City: "Camp B"}},
		{"Ration packs for camp B", "Food", entities.Medium, 1000, 2, entities.Location{Latitude: 9.8, Longitude: 9.9, City: "Camp B"}},
		{"Generators for distribution center", "Equipment", entities.Low, 5, 1, entities.Location{Latitude: 10.5, Longitude: 10.5, City: "Distribution Center"}},
	}

	for _, n := range needs {
		need, err := entities.NewNeed(now.Add(-time.Duration(n.ageHours*float64(time.Hour))), n.title, n.category, n.level, n.required, "unit", n.loc)
		if err != nil {
			return err
		}
		if err := c.SaveNeed(ctx, need); err != nil {
			return err
		}
	}

	expSoon := now.Add(3 * 24 * time.Hour)
	supplies := []struct {
		name, category string
		available      int64
		loc            entities.Location
		expiration     *time.Time
	}{
		{"Bottled water pallets", "Water", 800, entities.Location{Latitude: 10, Longitude: 10, City: "Shelter A"}, nil},
		{"First aid kits", "Medical", 30, entities.Location{Latitude: 10.1, Longitude: 10.1, City: "Regional Depot"}, nil},
		{"Family tents", "Shelter", 120, entities.Location{Latitude: 9.9, Longitude: 9.9, City: "Camp B"}, nil},
		{"Canned rations", "Food", 1500, entities.Location{Latitude: 9.8, Longitude: 9.8, City: "Camp B"}, &expSoon},
		{"Diesel generators", "Equipment", 3, entities.Location{Latitude: 10.5, Longitude: 10.6, City: "Distribution Center"}, nil},
	}

	for _, s := range supplies {
		supply, err := entities.NewSupply(now, s.name, s.category, s.available, "unit", s.loc)
		if err != nil {
			return err
		}
		supply.Expiration = s.expiration
		if err := c.SaveSupply(ctx, supply); err != nil {
			return err
		}
	}

	return nil
}
