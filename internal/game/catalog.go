package game

// BuildingType is the discriminator of a tile occupant.
type BuildingType string

const (
	// Terrain
	BuildingEmpty BuildingType = "empty"
	BuildingGrass BuildingType = "grass"
	BuildingWater BuildingType = "water"

	// Infrastructure
	BuildingRoad   BuildingType = "road"
	BuildingBridge BuildingType = "bridge"
	BuildingRail   BuildingType = "rail"
	BuildingTree   BuildingType = "tree"

	// Residential
	BuildingHouseSmall    BuildingType = "house_small"
	BuildingHouseMedium   BuildingType = "house_medium"
	BuildingMansion       BuildingType = "mansion"
	BuildingApartmentLow  BuildingType = "apartment_low"
	BuildingApartmentHigh BuildingType = "apartment_high"

	// Commercial
	BuildingShopSmall  BuildingType = "shop_small"
	BuildingShopMedium BuildingType = "shop_medium"
	BuildingOfficeLow  BuildingType = "office_low"
	BuildingOfficeHigh BuildingType = "office_high"
	BuildingMall       BuildingType = "mall"

	// Industrial
	BuildingFactorySmall  BuildingType = "factory_small"
	BuildingFactoryMedium BuildingType = "factory_medium"
	BuildingFactoryLarge  BuildingType = "factory_large"
	BuildingWarehouse     BuildingType = "warehouse"

	// Services
	BuildingPoliceStation BuildingType = "police_station"
	BuildingFireStation   BuildingType = "fire_station"
	BuildingHospital      BuildingType = "hospital"
	BuildingSchool        BuildingType = "school"
	BuildingUniversity    BuildingType = "university"
	BuildingPark          BuildingType = "park"
	BuildingParkLarge     BuildingType = "park_large"
	BuildingTennis        BuildingType = "tennis"

	// Utilities
	BuildingPowerPlant BuildingType = "power_plant"
	BuildingWaterTower BuildingType = "water_tower"

	// Transportation
	BuildingSubwayStation BuildingType = "subway_station"
	BuildingRailStation   BuildingType = "rail_station"

	// Special
	BuildingStadium       BuildingType = "stadium"
	BuildingMuseum        BuildingType = "museum"
	BuildingAirport       BuildingType = "airport"
	BuildingSpaceProgram  BuildingType = "space_program"
	BuildingCityHall      BuildingType = "city_hall"
	BuildingAmusementPark BuildingType = "amusement_park"

	// Parks
	BuildingBasketballCourts   BuildingType = "basketball_courts"
	BuildingPlaygroundSmall    BuildingType = "playground_small"
	BuildingPlaygroundLarge    BuildingType = "playground_large"
	BuildingBaseballFieldSmall BuildingType = "baseball_field_small"
	BuildingSoccerFieldSmall   BuildingType = "soccer_field_small"
	BuildingFootballField      BuildingType = "football_field"
	BuildingBaseballStadium    BuildingType = "baseball_stadium"
	BuildingCommunityCenter    BuildingType = "community_center"
	BuildingOfficeSmall        BuildingType = "office_building_small"
	BuildingSwimmingPool       BuildingType = "swimming_pool"
	BuildingSkatePark          BuildingType = "skate_park"
	BuildingMiniGolfCourse     BuildingType = "mini_golf_course"
	BuildingBleachersField     BuildingType = "bleachers_field"
	BuildingGoKartTrack        BuildingType = "go_kart_track"
	BuildingAmphitheater       BuildingType = "amphitheater"
	BuildingGreenhouseGarden   BuildingType = "greenhouse_garden"
	BuildingAnimalPensFarm     BuildingType = "animal_pens_farm"
	BuildingCabinHouse         BuildingType = "cabin_house"
	BuildingCampground         BuildingType = "campground"
	BuildingMarinaDocksSmall   BuildingType = "marina_docks_small"
	BuildingPierLarge          BuildingType = "pier_large"
	BuildingRollerCoasterSmall BuildingType = "roller_coaster_small"
	BuildingCommunityGarden    BuildingType = "community_garden"
	BuildingPondPark           BuildingType = "pond_park"
	BuildingParkGate           BuildingType = "park_gate"
	BuildingMountainLodge      BuildingType = "mountain_lodge"
	BuildingMountainTrailhead  BuildingType = "mountain_trailhead"
)

// buildingCosts is the fixed placement price of every catalog entry.
// Terrain and zone-grown buildings are free.
var buildingCosts = map[BuildingType]int{
	BuildingEmpty: 0,
	BuildingGrass: 0,
	BuildingWater: 0,

	BuildingRoad:   25,
	BuildingBridge: 25,
	BuildingRail:   40,
	BuildingTree:   15,

	BuildingHouseSmall:    0,
	BuildingHouseMedium:   0,
	BuildingMansion:       0,
	BuildingApartmentLow:  0,
	BuildingApartmentHigh: 0,
	BuildingShopSmall:     0,
	BuildingShopMedium:    0,
	BuildingOfficeLow:     0,
	BuildingOfficeHigh:    0,
	BuildingMall:          0,
	BuildingFactorySmall:  0,
	BuildingFactoryMedium: 0,
	BuildingFactoryLarge:  0,
	BuildingWarehouse:     0,

	BuildingPoliceStation: 500,
	BuildingFireStation:   500,
	BuildingHospital:      1000,
	BuildingSchool:        400,
	BuildingUniversity:    2000,
	BuildingPark:          150,
	BuildingParkLarge:     600,
	BuildingTennis:        200,
	BuildingPowerPlant:    3000,
	BuildingWaterTower:    1000,
	BuildingSubwayStation: 750,
	BuildingRailStation:   1000,
	BuildingStadium:       5000,
	BuildingMuseum:        4000,
	BuildingAirport:       10000,
	BuildingSpaceProgram:  15000,
	BuildingCityHall:      6000,
	BuildingAmusementPark: 12000,

	BuildingBasketballCourts:   250,
	BuildingPlaygroundSmall:    200,
	BuildingPlaygroundLarge:    350,
	BuildingBaseballFieldSmall: 800,
	BuildingSoccerFieldSmall:   400,
	BuildingFootballField:      1200,
	BuildingBaseballStadium:    6000,
	BuildingCommunityCenter:    500,
	BuildingOfficeSmall:        600,
	BuildingSwimmingPool:       450,
	BuildingSkatePark:          300,
	BuildingMiniGolfCourse:     700,
	BuildingBleachersField:     350,
	BuildingGoKartTrack:        1000,
	BuildingAmphitheater:       1500,
	BuildingGreenhouseGarden:   800,
	BuildingAnimalPensFarm:     400,
	BuildingCabinHouse:         300,
	BuildingCampground:         250,
	BuildingMarinaDocksSmall:   1200,
	BuildingPierLarge:          600,
	BuildingRollerCoasterSmall: 3000,
	BuildingCommunityGarden:    200,
	BuildingPondPark:           350,
	BuildingParkGate:           150,
	BuildingMountainLodge:      1500,
	BuildingMountainTrailhead:  400,
}

var waterfront = map[BuildingType]bool{
	BuildingMarinaDocksSmall: true,
	BuildingPierLarge:        true,
}

// Known reports whether t is part of the building catalog.
func (t BuildingType) Known() bool {
	_, ok := buildingCosts[t]
	return ok
}

// Cost is the placement price of t. Unknown types cost nothing; callers
// reject them through Known before pricing.
func (t BuildingType) Cost() int {
	return buildingCosts[t]
}

// Waterfront reports whether t may be placed on a water tile.
func (t BuildingType) Waterfront() bool {
	return waterfront[t]
}

// BuildingTypes returns every catalog entry.
func BuildingTypes() []BuildingType {
	out := make([]BuildingType, 0, len(buildingCosts))
	for t := range buildingCosts {
		out = append(out, t)
	}
	return out
}
