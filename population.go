package parkfee

import "math"

// defaultMinMaxFee / defaultMinMaxMinutes are the fallback draw ranges for
// synthetic drivers from spec.md §4.2 step 2: "max_parking_fee and
// desired_parking_time are drawn from configured ranges (defaults: fee
// uniform in [2, 10], minutes uniform in [30, 240])".
const (
	defaultDriverMinFee     = 2.0
	defaultDriverMaxFee     = 10.0
	defaultDriverMinMinutes = 30
	defaultDriverMaxMinutes = 240
)

// buildDriverPopulation is a pure function of (city, seed, drivers-per-zone-
// capacity) per spec.md §9, so driver populations are reproducible and
// cacheable across every evaluation within one optimization run. Population
// size is ⌊total_maximum_capacity · drivers_per_zone_capacity⌋.
func buildDriverPopulation(city City, rng *rngSource, driversPerZoneCapacity float64) []Driver {
	count := int(math.Floor(float64(city.TotalMaximumCapacity()) * driversPerZoneCapacity))
	if count < 0 {
		count = 0
	}

	drivers := make([]Driver, count)
	for i := 0; i < count; i++ {
		startLat := rng.uniform(city.MinLat, city.MaxLat)
		startLon := rng.uniform(city.MinLon, city.MaxLon)

		destLat, destLon := city.CenterLat(), city.CenterLon()
		if len(city.POIs) > 0 {
			poi := city.POIs[rng.intn(len(city.POIs))]
			destLat, destLon = poi.Lat, poi.Lon
		}

		drivers[i] = Driver{
			ID:                 i,
			StartLat:           startLat,
			StartLon:           startLon,
			DestLat:            destLat,
			DestLon:            destLon,
			MaxParkingFee:      rng.uniform(defaultDriverMinFee, defaultDriverMaxFee),
			DesiredParkingTime: defaultDriverMinMinutes + rng.intn(defaultDriverMaxMinutes-defaultDriverMinMinutes+1),
		}
	}
	return drivers
}
