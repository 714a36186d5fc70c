package world

import (
	"reflect"
	"testing"

	"github.com/nathoo/realmcore/types"
)

func testDef() *types.WorldDef {
	return &types.WorldDef{
		Name:           "Test Realm",
		CurrencyName:   "Coins",
		StartRoom:      "square",
		WelcomeMessage: "Welcome.",
		Rooms: []types.RoomDef{
			{
				ID:          "square",
				Name:        "Town Square",
				Description: "A square.",
				Exits:       map[string]string{"north": "market", "west": "path", "up": "roof"},
			},
			{
				ID:          "market",
				Name:        "Marketplace",
				Description: "Stalls.",
				Exits:       map[string]string{"south": "square"},
				Items: []types.Item{
					{Name: "Apple", Type: "food", Effect: "heal", Value: 5},
					{Name: "Pineapple", Type: "food", Effect: "heal", Value: 8},
				},
			},
			{
				ID:          "path",
				Name:        "Forest Path",
				Description: "Trees.",
				Exits:       map[string]string{"east": "square"},
				Enemies: []types.EnemyDef{
					{Name: "Wolf", Level: 1, HP: 30, Damage: 8, XPReward: 20, GoldReward: 5},
					{Name: "Bear", Level: 2, HP: 50, Damage: 12, XPReward: 35, GoldReward: 10},
				},
			},
		},
	}
}

func TestNew_InstantiatesRooms(t *testing.T) {
	w := New(testDef())

	if got := w.RoomIDs(); !reflect.DeepEqual(got, []string{"square", "market", "path"}) {
		t.Errorf("unexpected room order: %v", got)
	}
	sq, ok := w.Room("square")
	if !ok {
		t.Fatal("square not found")
	}
	if _, ok := sq.Exits["up"]; ok {
		t.Error("non-cardinal exits should be dropped")
	}
	if got := sq.ExitDirections(); !reflect.DeepEqual(got, []types.Direction{types.North, types.West}) {
		t.Errorf("unexpected exits: %v", got)
	}
}

func TestNew_DoesNotAliasDefinition(t *testing.T) {
	def := testDef()
	w := New(def)
	m, _ := w.Room("market")
	m.TakeItem(0)
	if len(def.Rooms[1].Items) != 2 || def.Rooms[1].Items[0].Name != "Apple" {
		t.Errorf("world mutation leaked into definition: %+v", def.Rooms[1].Items)
	}

	w2 := New(def)
	m2, _ := w2.Room("market")
	if len(m2.Items) != 2 {
		t.Errorf("fresh world should see both items, got %d", len(m2.Items))
	}
}

func TestSpawn_FixesMaxHP(t *testing.T) {
	w := New(testDef())
	p, _ := w.Room("path")
	wolf := p.Enemies[0]
	if wolf.HP != 30 || wolf.MaxHP != 30 {
		t.Fatalf("expected 30/30, got %d/%d", wolf.HP, wolf.MaxHP)
	}
	if wolf.TakeDamage(12) {
		t.Fatal("12 damage should not kill a 30 hp wolf")
	}
	if !wolf.TakeDamage(100) || wolf.HP != 0 {
		t.Fatalf("expected death with hp floored at 0, got %d", wolf.HP)
	}
	if wolf.MaxHP != 30 {
		t.Errorf("max hp should not change, got %d", wolf.MaxHP)
	}
}

func TestRoom_FindTakePutItem(t *testing.T) {
	w := New(testDef())
	m, _ := w.Room("market")

	if i := m.FindItem("APPLE"); i != 0 {
		t.Errorf("first substring match should win, got index %d", i)
	}
	if i := m.FindItem("pine"); i != 1 {
		t.Errorf("expected index 1, got %d", i)
	}
	if i := m.FindItem("sword"); i != -1 {
		t.Errorf("expected -1, got %d", i)
	}

	it := m.TakeItem(0)
	if it.Name != "Apple" || len(m.Items) != 1 {
		t.Fatalf("take failed: %+v, remaining %v", it, m.Items)
	}
	m.PutItem(it)
	if got := ItemNames(m.Items); !reflect.DeepEqual(got, []string{"Pineapple", "Apple"}) {
		t.Errorf("dropped items should append, got %v", got)
	}
}

func TestRoom_RemoveEnemy(t *testing.T) {
	w := New(testDef())
	p, _ := w.Room("path")
	bear := p.Enemies[1]

	if !p.RemoveEnemy(bear) {
		t.Fatal("expected bear removed")
	}
	if len(p.Enemies) != 1 || p.Enemies[0].Name != "Wolf" {
		t.Errorf("unexpected enemies: %v", p.Enemies)
	}
	if p.RemoveEnemy(bear) {
		t.Error("removing twice should report false")
	}
}

func TestRespawnRoom_DefaultsToStart(t *testing.T) {
	def := testDef()
	w := New(def)
	if w.RespawnRoom() != "square" {
		t.Errorf("expected square, got %q", w.RespawnRoom())
	}
	def.RespawnRoom = "market"
	if w.RespawnRoom() != "market" {
		t.Errorf("expected market, got %q", w.RespawnRoom())
	}
}

func TestCurrency_Default(t *testing.T) {
	def := testDef()
	w := New(def)
	if w.Currency() != "Coins" {
		t.Errorf("expected Coins, got %q", w.Currency())
	}
	def.CurrencyName = ""
	if w.Currency() != "Gold" {
		t.Errorf("expected Gold fallback, got %q", w.Currency())
	}
}

func TestSnapshot_ResolvesNeighbors(t *testing.T) {
	w := New(testDef())
	sq, _ := w.Room("square")
	snap := w.Snapshot(sq)

	if snap.Neighbors["north"] != "Marketplace" || snap.Neighbors["west"] != "Forest Path" {
		t.Errorf("unexpected neighbors: %v", snap.Neighbors)
	}

	p, _ := w.Room("path")
	ps := w.Snapshot(p)
	p.Enemies[0].HP = 1
	if ps.Enemies[0].HP != 30 {
		t.Error("snapshot enemies should be copies")
	}
}

func TestParseDirection(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want types.Direction
		ok   bool
	}{
		{"north", types.North, true},
		{"SOUTH", types.South, true},
		{"east", types.East, true},
		{"west", types.West, true},
		{"up", "", false},
		{"n", "", false},
	} {
		got, ok := ParseDirection(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDirection(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
