package action

import (
	"errors"
	"testing"

	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/game"
)

func newState(t *testing.T, size int) *game.GameState {
	t.Helper()
	s, err := game.NewGameState("Test City", size)
	if err != nil {
		t.Fatalf("new game state: %v", err)
	}
	return s
}

func wantCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := apperr.CodeOf(err); got != code {
		t.Fatalf("error code = %s, want %s (%v)", got, code, err)
	}
}

func TestOutOfBoundsAlwaysRejected(t *testing.T) {
	s := newState(t, 10)
	coords := [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {10, 10}, {-5, 42}}
	for _, c := range coords {
		x, y := c[0], c[1]
		actions := []Action{
			PlaceBuilding{X: x, Y: y, BuildingType: game.BuildingHouseSmall},
			Bulldoze{X: x, Y: y},
			PlaceZone{X: x, Y: y, ZoneType: game.ZoneResidential},
			PlaceTree{X: x, Y: y},
			Terraform{X: x, Y: y, TerraformType: "water"},
			PlaceRoad{Path: []game.Point{{X: 1, Y: 1}, {X: x, Y: y}}},
		}
		for _, a := range actions {
			if Valid(a, s) {
				t.Errorf("%s at (%d,%d) should be invalid", a.Type(), x, y)
			}
			_, err := Process(a, s)
			wantCode(t, err, apperr.CodeOutOfBounds)
		}
	}
}

func TestInsufficientFunds(t *testing.T) {
	s := newState(t, 10)
	s.Stats.Money = 0

	cases := []Action{
		PlaceBuilding{X: 1, Y: 1, BuildingType: game.BuildingHospital},
		Bulldoze{X: 1, Y: 1},
		PlaceZone{X: 1, Y: 1, ZoneType: game.ZoneCommercial},
	}
	for _, a := range cases {
		_, err := Process(a, s)
		wantCode(t, err, apperr.CodeInsufficientFunds)
	}

	s.Stats.Money = game.BuildingHospital.Cost() - 1
	_, err := Process(PlaceBuilding{X: 1, Y: 1, BuildingType: game.BuildingHospital}, s)
	wantCode(t, err, apperr.CodeInsufficientFunds)
}

func TestZeroCostAlwaysPassesFunds(t *testing.T) {
	s := newState(t, 10)
	s.Stats.Money = 0
	res, err := Process(PlaceBuilding{X: 2, Y: 3, BuildingType: game.BuildingHouseSmall}, s)
	if err != nil {
		t.Fatalf("zero-cost placement failed: %v", err)
	}
	if res.State.Stats.Money != 0 {
		t.Fatalf("money = %d, want 0", res.State.Stats.Money)
	}
}

func TestMoneyDeductedExactly(t *testing.T) {
	for _, a := range []Action{
		PlaceBuilding{X: 4, Y: 4, BuildingType: game.BuildingPoliceStation},
		PlaceBuilding{X: 4, Y: 4, BuildingType: game.BuildingPark},
		Bulldoze{X: 4, Y: 4},
		PlaceZone{X: 4, Y: 4, ZoneType: game.ZoneIndustrial},
	} {
		s := newState(t, 10)
		s.Stats.Money = Cost(a)
		res, err := Process(a, s)
		if err != nil {
			t.Fatalf("%s: %v", a.Type(), err)
		}
		if res.State.Stats.Money != 0 {
			t.Fatalf("%s: money = %d, want 0", a.Type(), res.State.Stats.Money)
		}
	}
}

func TestBulldozeWaterRejected(t *testing.T) {
	s := newState(t, 10)
	s.Grid[5][5].Building = game.NewBuilding(game.BuildingWater)
	_, err := Process(Bulldoze{X: 5, Y: 5}, s)
	wantCode(t, err, apperr.CodeInvalidTile)
}

func TestBulldozeRevertsToGrass(t *testing.T) {
	for _, typ := range []game.BuildingType{game.BuildingHospital, game.BuildingRoad, game.BuildingGrass, game.BuildingEmpty} {
		s := newState(t, 10)
		s.Grid[2][7].Building = game.NewBuilding(typ)
		s.Grid[2][7].Zone = game.ZoneCommercial
		res, err := Process(Bulldoze{X: 7, Y: 2}, s)
		if err != nil {
			t.Fatalf("bulldoze %s: %v", typ, err)
		}
		tile := res.State.Grid[2][7]
		if tile.Building.Type != game.BuildingGrass || tile.Zone != game.ZoneNone {
			t.Fatalf("bulldoze %s left %s/%s", typ, tile.Building.Type, tile.Zone)
		}
		if res.State.Stats.Money != game.StartingMoney-BulldozeCost {
			t.Fatalf("money = %d", res.State.Stats.Money)
		}
	}
}

func TestWaterPlacementRules(t *testing.T) {
	s := newState(t, 10)
	s.Grid[0][0].Building = game.NewBuilding(game.BuildingWater)

	for _, typ := range game.BuildingTypes() {
		a := PlaceBuilding{X: 0, Y: 0, BuildingType: typ}
		err := Validate(a, s)
		if typ.Waterfront() {
			if err != nil {
				t.Errorf("%s on water should be allowed: %v", typ, err)
			}
			continue
		}
		wantCode(t, err, apperr.CodeInvalidTile)
	}

	res, err := Process(PlaceBuilding{X: 0, Y: 0, BuildingType: game.BuildingPierLarge}, s)
	if err != nil {
		t.Fatalf("pier on water: %v", err)
	}
	if res.State.Grid[0][0].Building.Type != game.BuildingPierLarge {
		t.Fatalf("tile building = %s", res.State.Grid[0][0].Building.Type)
	}
}

func TestZoneOnWaterRejected(t *testing.T) {
	s := newState(t, 10)
	s.Grid[3][3].Building = game.NewBuilding(game.BuildingWater)
	_, err := Process(PlaceZone{X: 3, Y: 3, ZoneType: game.ZoneResidential}, s)
	wantCode(t, err, apperr.CodeInvalidTile)
}

func TestPlaceBuildingResetsRuntimeFields(t *testing.T) {
	s := newState(t, 10)
	s.Grid[1][1].Zone = game.ZoneResidential
	s.Grid[1][1].Building = game.Building{
		Type: game.BuildingHouseMedium, Population: 12, Jobs: 3, Powered: true,
		OnFire: true, ConstructionProgress: 40, Abandoned: true,
	}
	res, err := Process(PlaceBuilding{X: 1, Y: 1, BuildingType: game.BuildingSchool}, s)
	if err != nil {
		t.Fatalf("place school: %v", err)
	}
	got := res.State.Grid[1][1]
	want := game.NewBuilding(game.BuildingSchool)
	if got.Building != want {
		t.Fatalf("building = %+v, want %+v", got.Building, want)
	}
	if got.Zone != game.ZoneNone {
		t.Fatalf("zone = %s, want none", got.Zone)
	}
	if len(res.ChangedTiles) != 1 || res.ChangedTiles[0] != (game.Point{X: 1, Y: 1}) {
		t.Fatalf("changed tiles = %v", res.ChangedTiles)
	}
}

func TestPlaceZoneKeepsBuilding(t *testing.T) {
	s := newState(t, 10)
	s.Grid[6][2].Building = game.NewBuilding(game.BuildingShopSmall)
	res, err := Process(PlaceZone{X: 2, Y: 6, ZoneType: game.ZoneCommercial}, s)
	if err != nil {
		t.Fatalf("place zone: %v", err)
	}
	tile := res.State.Grid[6][2]
	if tile.Zone != game.ZoneCommercial || tile.Building.Type != game.BuildingShopSmall {
		t.Fatalf("tile = %s/%s", tile.Zone, tile.Building.Type)
	}
	if res.State.Stats.Money != game.StartingMoney-ZoneCost {
		t.Fatalf("money = %d", res.State.Stats.Money)
	}
}

func TestProcessNeverMutatesInput(t *testing.T) {
	s := newState(t, 10)
	before := s.Clone()
	if _, err := Process(PlaceBuilding{X: 1, Y: 2, BuildingType: game.BuildingHospital}, s); err != nil {
		t.Fatalf("process: %v", err)
	}
	if _, err := Process(Bulldoze{X: 1, Y: 2}, s); err != nil {
		t.Fatalf("process: %v", err)
	}
	if s.Stats.Money != before.Stats.Money || s.Grid[2][1] != before.Grid[2][1] {
		t.Fatal("input state was modified")
	}
}

func TestUnknownTypesRejected(t *testing.T) {
	s := newState(t, 10)
	_, err := Process(PlaceBuilding{X: 1, Y: 1, BuildingType: "castle"}, s)
	wantCode(t, err, apperr.CodeInvalidAction)
	_, err = Process(PlaceZone{X: 1, Y: 1, ZoneType: "farm"}, s)
	wantCode(t, err, apperr.CodeInvalidAction)
}

func TestUnsupportedActions(t *testing.T) {
	s := newState(t, 10)
	for _, a := range []Action{
		PlaceRoad{Path: []game.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		PlaceRail{Path: []game.Point{{X: 0, Y: 0}}},
		PlaceSubway{Path: []game.Point{{X: 0, Y: 0}}},
		PlaceTree{X: 1, Y: 1},
		Terraform{X: 1, Y: 1, TerraformType: "land"},
		SetTaxRate{TaxRate: 12},
		SetSpeed{Speed: 2},
		SetBudget{Category: "police", Funding: 80},
	} {
		res, err := Process(a, s)
		wantCode(t, err, apperr.CodeUnsupportedAction)
		if res.State != nil {
			t.Fatalf("%s returned a state", a.Type())
		}
	}
}

func TestNilInputs(t *testing.T) {
	s := newState(t, 2)
	if Valid(nil, s) {
		t.Fatal("nil action should be invalid")
	}
	if Valid(Bulldoze{}, nil) {
		t.Fatal("nil state should be invalid")
	}
}

func TestEndToEndSequence(t *testing.T) {
	s := newState(t, 50)

	res, err := Process(PlaceBuilding{X: 10, Y: 10, BuildingType: game.BuildingHouseSmall}, s)
	if err != nil {
		t.Fatalf("place house: %v", err)
	}
	s = res.State
	if s.Grid[10][10].Building.Type != game.BuildingHouseSmall {
		t.Fatalf("tile = %s", s.Grid[10][10].Building.Type)
	}
	if s.Stats.Money != game.StartingMoney {
		t.Fatalf("money changed to %d", s.Stats.Money)
	}

	broke := s.Clone()
	broke.Stats.Money = 0
	_, err = Process(PlaceBuilding{X: 10, Y: 10, BuildingType: game.BuildingHospital}, broke)
	if !errors.Is(err, &apperr.Error{Code: apperr.CodeInsufficientFunds}) {
		t.Fatalf("expected funds error, got %v", err)
	}

	res, err = Process(Bulldoze{X: 10, Y: 10}, s)
	if err != nil {
		t.Fatalf("bulldoze: %v", err)
	}
	if res.State.Grid[10][10].Building.Type != game.BuildingGrass {
		t.Fatalf("tile = %s", res.State.Grid[10][10].Building.Type)
	}
	if res.State.Stats.Money != s.Stats.Money-BulldozeCost {
		t.Fatalf("money = %d", res.State.Stats.Money)
	}
	s = res.State

	res, err = Process(PlaceZone{X: 10, Y: 10, ZoneType: game.ZoneResidential}, s)
	if err != nil {
		t.Fatalf("place zone: %v", err)
	}
	if res.State.Grid[10][10].Zone != game.ZoneResidential {
		t.Fatalf("zone = %s", res.State.Grid[10][10].Zone)
	}
}
