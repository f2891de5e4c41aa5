package domain

// Perk is a purchasable account upgrade
type Perk string

const (
	PerkDrawCooldown Perk = "draw_cooldown"
	PerkDailyBonus   Perk = "daily_bonus"
	PerkUpgradeLuck  Perk = "upgrade_luck"
	PerkFarm         Perk = "farm"
)

// PerkInfo describes price and repeatability of a perk
type PerkInfo struct {
	Perk       Perk  `json:"perk"`
	Price      int64 `json:"price"`
	Repeatable bool  `json:"repeatable"`
}

// Perks lists every perk on sale
var Perks = map[Perk]PerkInfo{
	PerkDrawCooldown: {Perk: PerkDrawCooldown, Price: 5000},
	PerkDailyBonus:   {Perk: PerkDailyBonus, Price: 3000},
	PerkUpgradeLuck:  {Perk: PerkUpgradeLuck, Price: 15000},
	PerkFarm:         {Perk: PerkFarm, Price: 10000, Repeatable: true},
}

// PerkSet is the set of one-time perks a user owns
type PerkSet map[Perk]bool

// Has reports whether p is owned
func (s PerkSet) Has(p Perk) bool {
	return s[p]
}

// List returns the owned perks in a stable order
func (s PerkSet) List() []Perk {
	out := make([]Perk, 0, len(s))
	for _, p := range []Perk{PerkDrawCooldown, PerkDailyBonus, PerkUpgradeLuck} {
		if s[p] {
			out = append(out, p)
		}
	}
	return out
}
