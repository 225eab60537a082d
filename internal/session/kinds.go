package session

import "strings"

// WeaponKind tags a weapon with the formula and passive that drive it.
// Dispatch is over this closed enum, never over raw handles.
type WeaponKind int

const (
	KindUnarmed WeaponKind = iota
	KindSword
	KindMace
	KindDagger
	KindFibonacci
	KindSaw
	KindVenom
	KindSpear
	KindScythe
	KindSummoner
	KindGrenadier
	KindShuriken
	KindTurret
)

var kindNames = map[WeaponKind]string{
	KindUnarmed:   "Unarmed",
	KindSword:     "Sword",
	KindMace:      "Mace",
	KindDagger:    "Dagger",
	KindFibonacci: "Fibonacci Blade",
	KindSaw:       "Saw",
	KindVenom:     "Venom Blade",
	KindSpear:     "Spear",
	KindScythe:    "Scythe",
	KindSummoner:  "Summoner Staff",
	KindGrenadier: "Grenade Launcher",
	KindShuriken:  "Shuriken",
	KindTurret:    "Turret",
}

// String returns the display name of the weapon kind.
func (k WeaponKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var kindKeys = map[string]WeaponKind{
	"unarmed":   KindUnarmed,
	"sword":     KindSword,
	"mace":      KindMace,
	"dagger":    KindDagger,
	"fibonacci": KindFibonacci,
	"saw":       KindSaw,
	"venom":     KindVenom,
	"spear":     KindSpear,
	"scythe":    KindScythe,
	"summoner":  KindSummoner,
	"grenadier": KindGrenadier,
	"shuriken":  KindShuriken,
	"turret":    KindTurret,
}

// ParseKind resolves a short configuration key like "saw" or "grenadier"
// to its weapon kind. Matching is case-insensitive.
func ParseKind(name string) (WeaponKind, bool) {
	k, ok := kindKeys[strings.ToLower(name)]
	return k, ok
}

// KindKeys returns the configuration keys of all weapon kinds a fighter can
// carry, in enum order. Used by menus to cycle through loadouts.
func KindKeys() []string {
	return []string{
		"unarmed", "sword", "mace", "dagger", "fibonacci", "saw",
		"venom", "spear", "scythe", "summoner", "grenadier", "shuriken",
	}
}

// FiresProjectiles reports whether weapons of this kind attack by spawning
// transient projectile bodies rather than by direct contact.
func (k WeaponKind) FiresProjectiles() bool {
	switch k {
	case KindGrenadier, KindShuriken, KindTurret:
		return true
	}
	return false
}

// AreaEffect reports whether this kind's projectiles deal their damage on
// detonation instead of on contact.
func (k WeaponKind) AreaEffect() bool {
	return k == KindGrenadier
}

// Tuning collects the gameplay constants of the session core. The exact
// values are tunable; the shape of each rule is the contract.
type Tuning struct {
	StartHealth int `yaml:"start_health"`

	// Contact damage per weapon kind at spawn time.
	BaseDamage map[WeaponKind]int `yaml:"-"`

	// Hit cooldown applied to a (victim, attacker) pair after a confirmed hit.
	BaseCooldown float64 `yaml:"base_cooldown"`
	// Dagger cooldown shrinks geometrically toward the floor on every
	// confirmed hit the dagger lands.
	DaggerCooldownShrink float64 `yaml:"dagger_cooldown_shrink"`
	DaggerCooldownFloor  float64 `yaml:"dagger_cooldown_floor"`

	// Freeze windows applied on a confirmed hit.
	VictimFreeze   float64 `yaml:"victim_freeze"`
	AttackerFreeze float64 `yaml:"attacker_freeze"`
	// Restored velocities are clamped to this magnitude on unfreeze.
	MaxRestoreSpeed float64 `yaml:"max_restore_speed"`

	// Status effect cadence.
	PoisonInterval   float64 `yaml:"poison_interval"`
	PoisonTickDamage int     `yaml:"poison_tick_damage"`
	BleedInterval    float64 `yaml:"bleed_interval"`
	BleedTickDamage  int     `yaml:"bleed_tick_damage"`

	// Unarmed: damage derives from current speed every frame.
	UnarmedSpeedScale  float64 `yaml:"unarmed_speed_scale"`
	UnarmedDamageCap   int     `yaml:"unarmed_damage_cap"`
	UnarmedRatchetStep float64 `yaml:"unarmed_ratchet_step"`
	UnarmedMaxMinSpeed float64 `yaml:"unarmed_max_min_speed"`

	// Spear reach growth.
	SpearReachGrowth float64 `yaml:"spear_reach_growth"`
	SpearReachCap    float64 `yaml:"spear_reach_cap"`
	SpearBonusNth    int     `yaml:"spear_bonus_nth"`
	SpearBonusDamage int     `yaml:"spear_bonus_damage"`

	// Mace multiplicative escalation factor.
	MaceFactor float64 `yaml:"mace_factor"`

	// Fibonacci blade: damage indexed by confirmed hit count, index capped.
	FibonacciMaxIndex int `yaml:"fibonacci_max_index"`

	// Saw/Venom: stacks handed to the status ledgers per confirmed hit.
	StatusStacksPerHit int `yaml:"status_stacks_per_hit"`

	// Summoner: spawns 1 + hits/SummonHitsPerExtra clones per hit, capped.
	SummonHitsPerExtra int `yaml:"summon_hits_per_extra"`
	SummonCap          int `yaml:"summon_cap"`

	// Projectiles.
	ShurikenRebounds   int     `yaml:"shuriken_rebounds"`
	ProjectileLifetime float64 `yaml:"projectile_lifetime"`
	GrenadeFuse        float64 `yaml:"grenade_fuse"`
	BlastRadius        float64 `yaml:"blast_radius"`
	BlastDamage        int     `yaml:"blast_damage"`
	BlastImpulse       float64 `yaml:"blast_impulse"`
	ReboundSoundGap    float64 `yaml:"rebound_sound_gap"`
}

// DefaultTuning returns the stock constants used by the VS games.
func DefaultTuning() Tuning {
	return Tuning{
		StartHealth: 100,
		BaseDamage: map[WeaponKind]int{
			KindUnarmed:   1,
			KindSword:     3,
			KindMace:      2,
			KindDagger:    2,
			KindFibonacci: 1,
			KindSaw:       2,
			KindVenom:     2,
			KindSpear:     3,
			KindScythe:    3,
			KindSummoner:  2,
			KindGrenadier: 0, // damage comes from detonation
			KindShuriken:  3,
			KindTurret:    2,
		},
		BaseCooldown:         0.5,
		DaggerCooldownShrink: 0.85,
		DaggerCooldownFloor:  0.08,
		VictimFreeze:         0.35,
		AttackerFreeze:       0.2,
		MaxRestoreSpeed:      30,
		PoisonInterval:       1.0,
		PoisonTickDamage:     1,
		BleedInterval:        0.25,
		BleedTickDamage:      1,
		UnarmedSpeedScale:    0.8,
		UnarmedDamageCap:     20,
		UnarmedRatchetStep:   0.25,
		UnarmedMaxMinSpeed:   8,
		SpearReachGrowth:     1.12,
		SpearReachCap:        3.0,
		SpearBonusNth:        3,
		SpearBonusDamage:     2,
		MaceFactor:           1.5,
		FibonacciMaxIndex:    20,
		StatusStacksPerHit:   1,
		SummonHitsPerExtra:   5,
		SummonCap:            4,
		ShurikenRebounds:     2,
		ProjectileLifetime:   6.0,
		GrenadeFuse:          1.2,
		BlastRadius:          2.5,
		BlastDamage:          12,
		BlastImpulse:         8,
		ReboundSoundGap:      0.12,
	}
}
