package entity

// Vitals holds life and contact damage for players and enemies
type Vitals struct {
	Life    int
	MaxLife int
	Damage  int

	// Cooldown counts down once per update; damage is not re-applied while it is positive
	Cooldown int
}

// NewVitals creates vitals at full life
func NewVitals(life, damage int) *Vitals {
	return &Vitals{
		Life:    life,
		MaxLife: life,
		Damage:  damage,
	}
}

// Tick counts the cooldown down by one frame
func (v *Vitals) Tick() {
	if v.Cooldown > 0 {
		v.Cooldown--
	}
}

// Hurt subtracts n from life
func (v *Vitals) Hurt(n int) {
	v.Life -= n
}

// Heal adds n to life. Life is not capped.
func (v *Vitals) Heal(n int) {
	v.Life += n
}

// Alive reports whether life is above zero
func (v *Vitals) Alive() bool {
	return v.Life > 0
}

// Invulnerable reports whether a damage cooldown is active
func (v *Vitals) Invulnerable() bool {
	return v.Cooldown > 0
}

// Pickup is the one-shot effect a pickup grants
type Pickup struct {
	Heal      int
	JumpBoost float64 // added to jump strength (JumpForce becomes more negative)
}

// Apply grants the effect to target
func (p *Pickup) Apply(target *Entity) {
	if p.Heal != 0 && target.Vitals != nil {
		target.Vitals.Heal(p.Heal)
	}
	if p.JumpBoost != 0 && target.Gravity != nil {
		target.Gravity.JumpForce -= p.JumpBoost
	}
}

// Strike is a transient hit-marker spawned by an attack
type Strike struct {
	Damage int
	TTL    int // frames left, counting the frame it was spawned in
}

// Tick consumes one frame and reports whether the strike has expired
func (s *Strike) Tick() bool {
	s.TTL--
	return s.TTL <= 0
}
