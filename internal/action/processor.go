package action

import (
	"fmt"

	"github.com/amonieson/isometric-city/internal/apperr"
	"github.com/amonieson/isometric-city/internal/game"
)

const (
	BulldozeCost = 10
	ZoneCost     = 50
)

// Result is the outcome of a successfully processed action.
type Result struct {
	State        *game.GameState
	ChangedTiles []game.Point
}

// Cost is the nominal price of a; it depends on the action type only.
func Cost(a Action) int {
	switch act := a.(type) {
	case PlaceBuilding:
		return act.BuildingType.Cost()
	case Bulldoze:
		return BulldozeCost
	case PlaceZone:
		return ZoneCost
	}
	return 0
}

// Validate checks bounds, then funds, then tile legality. A nil return means
// the action may be processed against s.
func Validate(a Action, s *game.GameState) error {
	if a == nil || s == nil {
		return apperr.New(apperr.CodeInvalidAction, "missing action or state")
	}

	if p, ok := a.(Positional); ok {
		x, y := p.Position()
		if !s.InBounds(x, y) {
			return apperr.New(apperr.CodeOutOfBounds,
				fmt.Sprintf("position (%d,%d) is outside the %dx%d grid", x, y, s.GridSize, s.GridSize))
		}
	}
	if p, ok := a.(Pathed); ok {
		for _, pt := range p.Points() {
			if !s.InBounds(pt.X, pt.Y) {
				return apperr.New(apperr.CodeOutOfBounds,
					fmt.Sprintf("path point (%d,%d) is outside the %dx%d grid", pt.X, pt.Y, s.GridSize, s.GridSize))
			}
		}
	}

	if cost := Cost(a); cost > 0 && s.Stats.Money < cost {
		return apperr.New(apperr.CodeInsufficientFunds,
			fmt.Sprintf("%s costs %d but only %d is available", a.Type(), cost, s.Stats.Money))
	}

	switch act := a.(type) {
	case PlaceBuilding:
		if !act.BuildingType.Known() {
			return apperr.New(apperr.CodeInvalidAction, fmt.Sprintf("unknown building type %q", act.BuildingType))
		}
		tile, ok := s.Tile(act.X, act.Y)
		if !ok {
			return apperr.New(apperr.CodeInvalidTile, "tile does not exist")
		}
		if tile.Building.Type == game.BuildingWater && !act.BuildingType.Waterfront() {
			return apperr.New(apperr.CodeInvalidTile, fmt.Sprintf("%s cannot be built on water", act.BuildingType))
		}
	case PlaceZone:
		if !act.ZoneType.Valid() {
			return apperr.New(apperr.CodeInvalidAction, fmt.Sprintf("unknown zone type %q", act.ZoneType))
		}
		tile, ok := s.Tile(act.X, act.Y)
		if !ok {
			return apperr.New(apperr.CodeInvalidTile, "tile does not exist")
		}
		if tile.Building.Type == game.BuildingWater {
			return apperr.New(apperr.CodeInvalidTile, "water cannot be zoned")
		}
	case Bulldoze:
		tile, ok := s.Tile(act.X, act.Y)
		if !ok {
			return apperr.New(apperr.CodeInvalidTile, "tile does not exist")
		}
		if tile.Building.Type == game.BuildingWater {
			return apperr.New(apperr.CodeInvalidTile, "water cannot be bulldozed")
		}
	}
	return nil
}

// Valid is the boolean form of Validate.
func Valid(a Action, s *game.GameState) bool {
	return Validate(a, s) == nil
}

// Process validates a and applies it to a copy of s. s is never modified; on
// any error the caller keeps its current state.
func Process(a Action, s *game.GameState) (res Result, err error) {
	if err := Validate(a, s); err != nil {
		return Result{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = apperr.Wrap(apperr.CodeInternal, "action processing failed", fmt.Errorf("panic: %v", r))
		}
	}()

	next := s.Clone()
	var changed []game.Point

	switch act := a.(type) {
	case PlaceBuilding:
		next.Stats.Money -= act.BuildingType.Cost()
		tile, _ := next.Tile(act.X, act.Y)
		tile.Building = game.NewBuilding(act.BuildingType)
		tile.Zone = game.ZoneNone
		changed = append(changed, game.Point{X: act.X, Y: act.Y})
	case Bulldoze:
		next.Stats.Money -= BulldozeCost
		tile, _ := next.Tile(act.X, act.Y)
		tile.Building = game.NewBuilding(game.BuildingGrass)
		tile.Zone = game.ZoneNone
		changed = append(changed, game.Point{X: act.X, Y: act.Y})
	case PlaceZone:
		next.Stats.Money -= ZoneCost
		tile, _ := next.Tile(act.X, act.Y)
		tile.Zone = act.ZoneType
		changed = append(changed, game.Point{X: act.X, Y: act.Y})
	default:
		return Result{}, apperr.New(apperr.CodeUnsupportedAction,
			fmt.Sprintf("action type %s not yet implemented", a.Type()))
	}

	return Result{State: next, ChangedTiles: changed}, nil
}
