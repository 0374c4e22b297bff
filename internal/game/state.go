package game

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	StartingMoney   = 50000
	StartingTaxRate = 9
	DefaultFunding  = 50
	baselineRating  = 50
)

// NewGameState builds a fresh, fully populated state for a city of
// gridSize×gridSize grass tiles.
func NewGameState(cityName string, gridSize int) (*GameState, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %d", gridSize)
	}
	g := &GameState{
		ID:               "game-" + uuid.NewString(),
		Grid:             make([][]Tile, gridSize),
		GridSize:         gridSize,
		CityName:         cityName,
		Year:             2024,
		Month:            1,
		Day:              1,
		Hour:             12,
		Speed:            1,
		SelectedTool:     "select",
		TaxRate:          StartingTaxRate,
		EffectiveTaxRate: StartingTaxRate,
		Stats: Stats{
			Money:       StartingMoney,
			Happiness:   baselineRating,
			Health:      baselineRating,
			Education:   baselineRating,
			Safety:      baselineRating,
			Environment: baselineRating,
		},
		Budget: Budget{
			Police:         BudgetCategory{Name: "Police", Funding: DefaultFunding},
			Fire:           BudgetCategory{Name: "Fire", Funding: DefaultFunding},
			Health:         BudgetCategory{Name: "Health", Funding: DefaultFunding},
			Education:      BudgetCategory{Name: "Education", Funding: DefaultFunding},
			Transportation: BudgetCategory{Name: "Transportation", Funding: DefaultFunding},
			Parks:          BudgetCategory{Name: "Parks", Funding: DefaultFunding},
			Power:          BudgetCategory{Name: "Power", Funding: DefaultFunding},
			Water:          BudgetCategory{Name: "Water", Funding: DefaultFunding},
		},
		Services: ServiceCoverage{
			Police:    intGrid(gridSize),
			Fire:      intGrid(gridSize),
			Health:    intGrid(gridSize),
			Education: intGrid(gridSize),
			Power:     boolGrid(gridSize),
			Water:     boolGrid(gridSize),
		},
		Notifications:    []Notification{},
		AdvisorMessages:  []AdvisorMessage{},
		History:          []HistoryPoint{},
		ActivePanel:      "none",
		DisastersEnabled: true,
		AdjacentCities:   []AdjacentCity{},
		WaterBodies:      []WaterBody{},
		GameVersion:      1,
		Cities:           []City{},
	}
	for y := 0; y < gridSize; y++ {
		row := make([]Tile, gridSize)
		for x := 0; x < gridSize; x++ {
			row[x] = Tile{X: x, Y: y, Zone: ZoneNone, Building: NewBuilding(BuildingGrass)}
		}
		g.Grid[y] = row
	}
	return g, nil
}

func intGrid(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, n)
	}
	return out
}

func boolGrid(n int) [][]bool {
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, n)
	}
	return out
}

// Clone returns a deep copy; mutating the copy never touches g.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	c := *g
	c.Grid = make([][]Tile, len(g.Grid))
	for y, row := range g.Grid {
		c.Grid[y] = append([]Tile(nil), row...)
	}
	c.Services = ServiceCoverage{
		Police:    cloneGrid(g.Services.Police),
		Fire:      cloneGrid(g.Services.Fire),
		Health:    cloneGrid(g.Services.Health),
		Education: cloneGrid(g.Services.Education),
		Power:     cloneGrid(g.Services.Power),
		Water:     cloneGrid(g.Services.Water),
	}
	c.Notifications = cloneSlice(g.Notifications)
	c.AdvisorMessages = cloneSlice(g.AdvisorMessages)
	for i := range c.AdvisorMessages {
		c.AdvisorMessages[i].Messages = cloneSlice(c.AdvisorMessages[i].Messages)
	}
	c.History = cloneSlice(g.History)
	c.AdjacentCities = cloneSlice(g.AdjacentCities)
	c.WaterBodies = cloneSlice(g.WaterBodies)
	for i := range c.WaterBodies {
		c.WaterBodies[i].Tiles = cloneSlice(c.WaterBodies[i].Tiles)
	}
	c.Cities = cloneSlice(g.Cities)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneGrid[T any](g [][]T) [][]T {
	if g == nil {
		return nil
	}
	out := make([][]T, len(g))
	for i, row := range g {
		out[i] = cloneSlice(row)
	}
	return out
}
