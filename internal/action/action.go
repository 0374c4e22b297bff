// Package action defines the player command union and the pure functions
// that validate and apply a command to a game state.
package action

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amonieson/isometric-city/internal/game"
)

// Type is the wire discriminator of an action.
type Type string

const (
	TypePlaceBuilding Type = "placeBuilding"
	TypeBulldoze      Type = "bulldoze"
	TypePlaceZone     Type = "placeZone"
	TypePlaceRoad     Type = "placeRoad"
	TypePlaceRail     Type = "placeRail"
	TypePlaceSubway   Type = "placeSubway"
	TypePlaceTree     Type = "placeTree"
	TypeTerraform     Type = "terraform"
	TypeSetTaxRate    Type = "setTaxRate"
	TypeSetSpeed      Type = "setSpeed"
	TypeSetBudget     Type = "setBudget"
)

// Action is a player command. The set of implementations is closed to this
// package.
type Action interface {
	Type() Type
	ClientTimestamp() *int64
	sealed()
}

// Positional is implemented by actions that target one tile.
type Positional interface {
	Action
	Position() (x, y int)
}

// Pathed is implemented by actions that target a run of tiles.
type Pathed interface {
	Action
	Points() []game.Point
}

// Base carries the fields common to every action. Timestamp is the optional
// client clock reading; it is kept for ordering but not enforced.
type Base struct {
	Timestamp *int64 `json:"timestamp,omitempty"`
}

func (b Base) ClientTimestamp() *int64 { return b.Timestamp }
func (Base) sealed()                   {}

type PlaceBuilding struct {
	Base
	X            int               `json:"x"`
	Y            int               `json:"y"`
	BuildingType game.BuildingType `json:"buildingType"`
}

type Bulldoze struct {
	Base
	X int `json:"x"`
	Y int `json:"y"`
}

type PlaceZone struct {
	Base
	X        int           `json:"x"`
	Y        int           `json:"y"`
	ZoneType game.ZoneType `json:"zoneType"`
}

type PlaceRoad struct {
	Base
	Path []game.Point `json:"path"`
}

type PlaceRail struct {
	Base
	Path []game.Point `json:"path"`
}

type PlaceSubway struct {
	Base
	Path []game.Point `json:"path"`
}

type PlaceTree struct {
	Base
	X int `json:"x"`
	Y int `json:"y"`
}

// Terraform turns a tile to water or back to land.
type Terraform struct {
	Base
	X             int    `json:"x"`
	Y             int    `json:"y"`
	TerraformType string `json:"terraformType"`
}

type SetTaxRate struct {
	Base
	TaxRate int `json:"taxRate"`
}

type SetSpeed struct {
	Base
	Speed int `json:"speed"`
}

type SetBudget struct {
	Base
	Category string `json:"category"`
	Funding  int    `json:"funding"`
}

func (PlaceBuilding) Type() Type { return TypePlaceBuilding }
func (Bulldoze) Type() Type      { return TypeBulldoze }
func (PlaceZone) Type() Type     { return TypePlaceZone }
func (PlaceRoad) Type() Type     { return TypePlaceRoad }
func (PlaceRail) Type() Type     { return TypePlaceRail }
func (PlaceSubway) Type() Type   { return TypePlaceSubway }
func (PlaceTree) Type() Type     { return TypePlaceTree }
func (Terraform) Type() Type     { return TypeTerraform }
func (SetTaxRate) Type() Type    { return TypeSetTaxRate }
func (SetSpeed) Type() Type      { return TypeSetSpeed }
func (SetBudget) Type() Type     { return TypeSetBudget }

func (a PlaceBuilding) Position() (int, int) { return a.X, a.Y }
func (a Bulldoze) Position() (int, int)      { return a.X, a.Y }
func (a PlaceZone) Position() (int, int)     { return a.X, a.Y }
func (a PlaceTree) Position() (int, int)     { return a.X, a.Y }
func (a Terraform) Position() (int, int)     { return a.X, a.Y }

func (a PlaceRoad) Points() []game.Point   { return a.Path }
func (a PlaceRail) Points() []game.Point   { return a.Path }
func (a PlaceSubway) Points() []game.Point { return a.Path }

// The wire form of every action is a flat object tagged with "type".

func (a PlaceBuilding) MarshalJSON() ([]byte, error) {
	type plain PlaceBuilding
	return marshalTagged(a.Type(), plain(a))
}

func (a Bulldoze) MarshalJSON() ([]byte, error) {
	type plain Bulldoze
	return marshalTagged(a.Type(), plain(a))
}

func (a PlaceZone) MarshalJSON() ([]byte, error) {
	type plain PlaceZone
	return marshalTagged(a.Type(), plain(a))
}

func (a PlaceRoad) MarshalJSON() ([]byte, error) {
	type plain PlaceRoad
	return marshalTagged(a.Type(), plain(a))
}

func (a PlaceRail) MarshalJSON() ([]byte, error) {
	type plain PlaceRail
	return marshalTagged(a.Type(), plain(a))
}

func (a PlaceSubway) MarshalJSON() ([]byte, error) {
	type plain PlaceSubway
	return marshalTagged(a.Type(), plain(a))
}

func (a PlaceTree) MarshalJSON() ([]byte, error) {
	type plain PlaceTree
	return marshalTagged(a.Type(), plain(a))
}

func (a Terraform) MarshalJSON() ([]byte, error) {
	type plain Terraform
	return marshalTagged(a.Type(), plain(a))
}

func (a SetTaxRate) MarshalJSON() ([]byte, error) {
	type plain SetTaxRate
	return marshalTagged(a.Type(), plain(a))
}

func (a SetSpeed) MarshalJSON() ([]byte, error) {
	type plain SetSpeed
	return marshalTagged(a.Type(), plain(a))
}

func (a SetBudget) MarshalJSON() ([]byte, error) {
	type plain SetBudget
	return marshalTagged(a.Type(), plain(a))
}

func marshalTagged(t Type, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(string(t))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// Decode parses a tagged action object. An unknown or missing "type" is an
// error.
func Decode(raw []byte) (Action, error) {
	var head struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	switch head.Type {
	case TypePlaceBuilding:
		return decodeAs[PlaceBuilding](raw)
	case TypeBulldoze:
		return decodeAs[Bulldoze](raw)
	case TypePlaceZone:
		return decodeAs[PlaceZone](raw)
	case TypePlaceRoad:
		return decodeAs[PlaceRoad](raw)
	case TypePlaceRail:
		return decodeAs[PlaceRail](raw)
	case TypePlaceSubway:
		return decodeAs[PlaceSubway](raw)
	case TypePlaceTree:
		return decodeAs[PlaceTree](raw)
	case TypeTerraform:
		return decodeAs[Terraform](raw)
	case TypeSetTaxRate:
		return decodeAs[SetTaxRate](raw)
	case TypeSetSpeed:
		return decodeAs[SetSpeed](raw)
	case TypeSetBudget:
		return decodeAs[SetBudget](raw)
	case "":
		return nil, fmt.Errorf("decode action: missing type")
	default:
		return nil, fmt.Errorf("decode action: unknown type %q", head.Type)
	}
}

func decodeAs[T Action](raw []byte) (Action, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", out.Type(), err)
	}
	return out, nil
}
