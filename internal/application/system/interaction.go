package system

import (
	"github.com/sirupsen/logrus"
	"github.com/younwookim/tilerun/internal/domain/entity"
	"github.com/younwookim/tilerun/internal/infrastructure/logger"
)

// interact applies the non-positional outcome of an m/c pair.
// Returns true when the pair is an interaction pair, which never gets positional correction.
func (d *Detector) interact(m, c *entity.Entity) bool {
	switch {
	case m.Role == entity.RoleStrike || c.Role == entity.RoleStrike:
		strike, other := m, c
		if c.Role == entity.RoleStrike {
			strike, other = c, m
		}
		if other.Role == entity.RoleEnemy && overlapsPending(m, c) && d.once(m, c) {
			d.strikeHit(strike, other)
		}
		return true

	case m.Role == entity.RolePlayer || c.Role == entity.RolePlayer:
		player, other := m, c
		if c.Role == entity.RolePlayer {
			player, other = c, m
		}
		return d.playerContact(player, other, m, c)
	}
	return false
}

// playerContact classifies other by tag policy: damage, then pickup, exit, hazard.
// m and c are the pair in mover/candidate order.
func (d *Detector) playerContact(player, other, m, c *entity.Entity) bool {
	var fire func()
	switch {
	case d.hasPolicy(other, PolicyDamage):
		fire = func() { d.exchangeDamage(player, other) }
	case d.hasPolicy(other, PolicyPickup):
		fire = func() { d.collect(player, other) }
	case d.hasPolicy(other, PolicyExit):
		fire = d.exitReached
	case d.hasPolicy(other, PolicyHazard):
		fire = d.playerDefeated
	default:
		return false
	}

	if overlapsPending(m, c) && d.once(m, c) {
		fire()
	}
	return true
}

// seen reports whether the pair already fired this pass
func (d *Detector) seen(a, b *entity.Entity) bool {
	_, ab := d.handled[pairKey{a, b}]
	_, ba := d.handled[pairKey{b, a}]
	return ab || ba
}

// once marks the pair as fired. Returns false if it already was.
func (d *Detector) once(a, b *entity.Entity) bool {
	if d.seen(a, b) {
		return false
	}
	d.handled[pairKey{a, b}] = struct{}{}
	return true
}

// exchangeDamage trades contact damage unless the player is in its cooldown window
func (d *Detector) exchangeDamage(player, enemy *entity.Entity) {
	pv, ev := player.Vitals, enemy.Vitals
	if pv == nil || ev == nil || pv.Invulnerable() {
		return
	}

	pv.Hurt(ev.Damage)
	ev.Hurt(pv.Damage)
	pv.Cooldown = d.cfg.DamageCooldown
	d.emit(entity.CueDamage)

	logger.Log.WithFields(logrus.Fields{
		"enemy":      enemy.Kind,
		"playerLife": pv.Life,
		"enemyLife":  ev.Life,
	}).Debug("damage exchanged")

	if !ev.Alive() {
		d.destroy(enemy)
	}
	if !pv.Alive() {
		d.playerDefeated()
	}
}

// collect consumes a pickup and applies its effect once
func (d *Detector) collect(player, pickup *entity.Entity) {
	d.destroy(pickup)
	if pickup.Pickup != nil {
		pickup.Pickup.Apply(player)
	}
	d.emit(entity.CuePickup)
}

// strikeHit damages the enemy and consumes the strike
func (d *Detector) strikeHit(strike, enemy *entity.Entity) {
	d.destroy(strike)
	if enemy.Vitals == nil || strike.Strike == nil {
		return
	}
	enemy.Vitals.Hurt(strike.Strike.Damage)
	d.emit(entity.CueDamage)
	if !enemy.Vitals.Alive() {
		d.destroy(enemy)
	}
}

func (d *Detector) destroy(e *entity.Entity) {
	if d.hooks != nil {
		d.hooks.Destroy(e)
	}
	e.MarkDestroyed()
	d.Unregister(e)
}

func (d *Detector) emit(cue entity.Cue) {
	if d.hooks != nil {
		d.hooks.Emit(cue)
	}
}

func (d *Detector) playerDefeated() {
	if d.hooks != nil {
		d.hooks.PlayerDefeated()
	}
}

func (d *Detector) exitReached() {
	if d.hooks != nil {
		d.hooks.ExitReached()
	}
}
