// Package game defines the authoritative city state shared by every member
// of a room and the factory that builds a fresh one.
package game

// ZoneType is the tile-level zoning designation.
type ZoneType string

const (
	ZoneNone        ZoneType = "none"
	ZoneResidential ZoneType = "residential"
	ZoneCommercial  ZoneType = "commercial"
	ZoneIndustrial  ZoneType = "industrial"
)

// Valid reports whether z is one of the known zone types.
func (z ZoneType) Valid() bool {
	switch z {
	case ZoneNone, ZoneResidential, ZoneCommercial, ZoneIndustrial:
		return true
	}
	return false
}

// Point is a tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Building struct {
	Type                 BuildingType `json:"type"`
	Level                int          `json:"level"`
	Population           int          `json:"population"`
	Jobs                 int          `json:"jobs"`
	Powered              bool         `json:"powered"`
	Watered              bool         `json:"watered"`
	OnFire               bool         `json:"onFire"`
	FireProgress         int          `json:"fireProgress"`
	Age                  int          `json:"age"`
	ConstructionProgress int          `json:"constructionProgress"`
	Abandoned            bool         `json:"abandoned"`
	Flipped              bool         `json:"flipped,omitempty"`
}

// NewBuilding returns a freshly constructed building: no occupants, unpowered,
// not burning, fully built and not abandoned.
func NewBuilding(t BuildingType) Building {
	return Building{Type: t, ConstructionProgress: 100}
}

type Tile struct {
	X              int      `json:"x"`
	Y              int      `json:"y"`
	Zone           ZoneType `json:"zone"`
	Building       Building `json:"building"`
	LandValue      int      `json:"landValue"`
	Pollution      int      `json:"pollution"`
	Crime          int      `json:"crime"`
	Traffic        int      `json:"traffic"`
	HasSubway      bool     `json:"hasSubway"`
	HasRailOverlay bool     `json:"hasRailOverlay,omitempty"`
}

type Demand struct {
	Residential int `json:"residential"`
	Commercial  int `json:"commercial"`
	Industrial  int `json:"industrial"`
}

type Stats struct {
	Population  int    `json:"population"`
	Jobs        int    `json:"jobs"`
	Money       int    `json:"money"`
	Income      int    `json:"income"`
	Expenses    int    `json:"expenses"`
	Happiness   int    `json:"happiness"`
	Health      int    `json:"health"`
	Education   int    `json:"education"`
	Safety      int    `json:"safety"`
	Environment int    `json:"environment"`
	Demand      Demand `json:"demand"`
}

// StatsPatch carries only the aggregate stats an action changed.
type StatsPatch struct {
	Population  *int    `json:"population,omitempty"`
	Jobs        *int    `json:"jobs,omitempty"`
	Money       *int    `json:"money,omitempty"`
	Income      *int    `json:"income,omitempty"`
	Expenses    *int    `json:"expenses,omitempty"`
	Happiness   *int    `json:"happiness,omitempty"`
	Health      *int    `json:"health,omitempty"`
	Education   *int    `json:"education,omitempty"`
	Safety      *int    `json:"safety,omitempty"`
	Environment *int    `json:"environment,omitempty"`
	Demand      *Demand `json:"demand,omitempty"`
}

// DiffStats returns the fields of next that differ from prev, or nil when
// nothing changed.
func DiffStats(prev, next Stats) *StatsPatch {
	var p StatsPatch
	changed := false
	pick := func(a, b int) *int {
		if a == b {
			return nil
		}
		changed = true
		v := b
		return &v
	}
	p.Population = pick(prev.Population, next.Population)
	p.Jobs = pick(prev.Jobs, next.Jobs)
	p.Money = pick(prev.Money, next.Money)
	p.Income = pick(prev.Income, next.Income)
	p.Expenses = pick(prev.Expenses, next.Expenses)
	p.Happiness = pick(prev.Happiness, next.Happiness)
	p.Health = pick(prev.Health, next.Health)
	p.Education = pick(prev.Education, next.Education)
	p.Safety = pick(prev.Safety, next.Safety)
	p.Environment = pick(prev.Environment, next.Environment)
	if prev.Demand != next.Demand {
		d := next.Demand
		p.Demand = &d
		changed = true
	}
	if !changed {
		return nil
	}
	return &p
}

// BudgetCategory is the funding state of one city service.
type BudgetCategory struct {
	Name    string `json:"name"`
	Funding int    `json:"funding"`
	Cost    int    `json:"cost"`
}

type Budget struct {
	Police         BudgetCategory `json:"police"`
	Fire           BudgetCategory `json:"fire"`
	Health         BudgetCategory `json:"health"`
	Education      BudgetCategory `json:"education"`
	Transportation BudgetCategory `json:"transportation"`
	Parks          BudgetCategory `json:"parks"`
	Power          BudgetCategory `json:"power"`
	Water          BudgetCategory `json:"water"`
}

// ServiceCoverage holds per-tile coverage, indexed [y][x].
type ServiceCoverage struct {
	Police    [][]int  `json:"police"`
	Fire      [][]int  `json:"fire"`
	Health    [][]int  `json:"health"`
	Education [][]int  `json:"education"`
	Power     [][]bool `json:"power"`
	Water     [][]bool `json:"water"`
}

type Notification struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Timestamp   int64  `json:"timestamp"`
}

type AdvisorMessage struct {
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	Messages []string `json:"messages"`
	Priority string   `json:"priority"`
}

type HistoryPoint struct {
	Year       int `json:"year"`
	Month      int `json:"month"`
	Population int `json:"population"`
	Money      int `json:"money"`
	Happiness  int `json:"happiness"`
}

type AdjacentCity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Direction  string `json:"direction"`
	Connected  bool   `json:"connected"`
	Discovered bool   `json:"discovered"`
}

type WaterBody struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Tiles   []Point `json:"tiles"`
	CenterX int     `json:"centerX"`
	CenterY int     `json:"centerY"`
}

type Bounds struct {
	MinX int `json:"minX"`
	MinY int `json:"minY"`
	MaxX int `json:"maxX"`
	MaxY int `json:"maxY"`
}

type CityEconomy struct {
	Population     int   `json:"population"`
	Jobs           int   `json:"jobs"`
	Income         int   `json:"income"`
	Expenses       int   `json:"expenses"`
	Happiness      int   `json:"happiness"`
	LastCalculated int64 `json:"lastCalculated"`
}

type City struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Bounds  Bounds      `json:"bounds"`
	Economy CityEconomy `json:"economy"`
	Color   string      `json:"color"`
}

// GameState is the authoritative simulation snapshot for one room.
// Grid is indexed [y][x] and is always GridSize×GridSize.
type GameState struct {
	ID               string           `json:"id"`
	Grid             [][]Tile         `json:"grid"`
	GridSize         int              `json:"gridSize"`
	CityName         string           `json:"cityName"`
	Year             int              `json:"year"`
	Month            int              `json:"month"`
	Day              int              `json:"day"`
	Hour             int              `json:"hour"`
	Tick             int64            `json:"tick"`
	Speed            int              `json:"speed"`
	SelectedTool     string           `json:"selectedTool"`
	TaxRate          int              `json:"taxRate"`
	EffectiveTaxRate int              `json:"effectiveTaxRate"`
	Stats            Stats            `json:"stats"`
	Budget           Budget           `json:"budget"`
	Services         ServiceCoverage  `json:"services"`
	Notifications    []Notification   `json:"notifications"`
	AdvisorMessages  []AdvisorMessage `json:"advisorMessages"`
	History          []HistoryPoint   `json:"history"`
	ActivePanel      string           `json:"activePanel"`
	DisastersEnabled bool             `json:"disastersEnabled"`
	AdjacentCities   []AdjacentCity   `json:"adjacentCities"`
	WaterBodies      []WaterBody      `json:"waterBodies"`
	GameVersion      int              `json:"gameVersion"`
	Cities           []City           `json:"cities"`
}

func (g *GameState) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.GridSize && y < g.GridSize
}

// Tile returns a pointer to the tile at (x, y), or false when the coordinate
// does not address a tile of this grid.
func (g *GameState) Tile(x, y int) (*Tile, bool) {
	if !g.InBounds(x, y) || y >= len(g.Grid) || x >= len(g.Grid[y]) {
		return nil, false
	}
	return &g.Grid[y][x], true
}
