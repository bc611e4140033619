package parkfee

import (
	"errors"
	"testing"
)

func validZone(id int) ParkingZone {
	return ParkingZone{
		ID:              id,
		Name:            "zone",
		Lat:             0.5,
		Lon:             0.5,
		MaximumCapacity: 100,
		CurrentCapacity: 50,
		CurrentFee:      3,
		MinFee:          1,
		MaxFee:          8,
		Elasticity:      -0.5,
		ShortTermShare:  0.5,
	}
}

func validCity() City {
	return City{
		ID:     1,
		Name:   "test city",
		MinLat: 0,
		MaxLat: 1,
		MinLon: 0,
		MaxLon: 1,
		Zones:  []ParkingZone{validZone(1), validZone(2)},
	}
}

func TestParkingZoneOccupancy(t *testing.T) {
	cases := []struct {
		name string
		zone ParkingZone
		want float64
	}{
		{"half full", ParkingZone{MaximumCapacity: 100, CurrentCapacity: 50}, 0.5},
		{"empty capacity guard", ParkingZone{MaximumCapacity: 0, CurrentCapacity: 0}, 0},
		{"full", ParkingZone{MaximumCapacity: 40, CurrentCapacity: 40}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.zone.Occupancy(); got != c.want {
				t.Errorf("Occupancy() = %f, want %f", got, c.want)
			}
		})
	}
}

func TestValidateCity(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(City) City
		wantErr error
	}{
		{"valid city passes", func(c City) City { return c }, nil},
		{"inverted latitude bounds", func(c City) City { c.MinLat, c.MaxLat = 1, 0; return c }, ErrInvalidCity},
		{"inverted longitude bounds", func(c City) City { c.MinLon, c.MaxLon = 1, 0; return c }, ErrInvalidCity},
		{"zero zones", func(c City) City { c.Zones = nil; return c }, ErrNoZones},
		{"duplicate zone id", func(c City) City {
			c.Zones = append(c.Zones, validZone(1))
			return c
		}, ErrInvalidCity},
		{"zone position outside bounds", func(c City) City {
			c.Zones[0].Lat = 5
			return c
		}, ErrInvalidZone},
		{"zone capacity over max", func(c City) City {
			c.Zones[0].CurrentCapacity = c.Zones[0].MaximumCapacity + 1
			return c
		}, ErrInvalidZone},
		{"zone positive elasticity", func(c City) City {
			c.Zones[0].Elasticity = 0.1
			return c
		}, ErrInvalidZone},
		{"zone min fee over max fee", func(c City) City {
			c.Zones[0].MinFee, c.Zones[0].MaxFee = 9, 8
			return c
		}, ErrInvalidZone},
		{"duplicate poi id", func(c City) City {
			c.POIs = []PointOfInterest{{ID: 1, Lat: 0.1, Lon: 0.1}, {ID: 1, Lat: 0.2, Lon: 0.2}}
			return c
		}, ErrInvalidCity},
		{"poi outside bounds", func(c City) City {
			c.POIs = []PointOfInterest{{ID: 1, Lat: 9, Lon: 9}}
			return c
		}, ErrInvalidCity},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateCity(c.mutate(validCity()))
			if c.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateCity() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("ValidateCity() = %v, want error wrapping %v", err, c.wantErr)
			}
		})
	}
}

func TestSnapFee(t *testing.T) {
	zones := []ParkingZone{{ID: 1, MinFee: 1, MaxFee: 10}}
	scenario := PricingScenario{
		Zones: []OptimizedZoneResult{{ZoneID: 1, NewFee: 4.37}},
	}

	snapped := SnapFee(scenario, zones, 0.25)
	if got := snapped.Zones[0].NewFee; got != 4.25 {
		t.Fatalf("NewFee = %f, want 4.25", got)
	}

	// original untouched
	if scenario.Zones[0].NewFee != 4.37 {
		t.Fatalf("SnapFee mutated its input scenario")
	}

	clamped := SnapFee(PricingScenario{Zones: []OptimizedZoneResult{{ZoneID: 1, NewFee: 0.1}}}, zones, 0.25)
	if clamped.Zones[0].NewFee != 1 {
		t.Fatalf("NewFee = %f, want clamp to MinFee 1", clamped.Zones[0].NewFee)
	}

	noop := SnapFee(scenario, zones, 0)
	if noop.Zones[0].NewFee != 4.37 {
		t.Fatalf("increment <= 0 should be a no-op, got %f", noop.Zones[0].NewFee)
	}

	unmatched := SnapFee(PricingScenario{Zones: []OptimizedZoneResult{{ZoneID: 99, NewFee: 4}}}, zones, 0.25)
	if unmatched.Zones[0].NewFee != 4 {
		t.Fatalf("zone id not found should pass through unchanged, got %f", unmatched.Zones[0].NewFee)
	}
}
