// Package game implements the authoritative match state, the DSL evaluator,
// trigger dispatch, and the turn-loop director driving a hocgsim match's
// zones, steps, and AST-driven card effects to completion.
package game

import (
	"github.com/oshifan/hocgsim/internal/card"
	"github.com/oshifan/hocgsim/internal/catalog"
)

// Instance is one physical card in play: a catalog record plus the
// per-card state that varies over the course of a match.
type Instance struct {
	Ref    card.Ref
	Owner  card.Player
	Number string
	Record *catalog.Record

	TurnPlaced       int
	AttackedThisTurn bool
}

// IsMember reports whether the instance is a Member card.
func (inst *Instance) IsMember() bool { return inst.Record.Kind == catalog.KindMember }

// IsCheer reports whether the instance is a Cheer card.
func (inst *Instance) IsCheer() bool { return inst.Record.Kind == catalog.KindCheer }

// IsSupport reports whether the instance is a Support card.
func (inst *Instance) IsSupport() bool { return inst.Record.Kind == catalog.KindSupport }

// IsLead reports whether the instance is a Lead (oshi) card.
func (inst *Instance) IsLead() bool { return inst.Record.Kind == catalog.KindLead }

// NameKey returns the lowercase name key used by is_named_<name> predicates,
// or "" for card kinds that don't carry one (Support, Cheer).
func (inst *Instance) NameKey() string {
	switch inst.Record.Kind {
	case catalog.KindLead:
		return inst.Record.Lead.NameKey
	case catalog.KindMember:
		return inst.Record.Member.NameKey
	default:
		return ""
	}
}

// HP returns the member's maximum HP, or 0 for non-members.
func (inst *Instance) HP() int {
	if inst.Record.Kind != catalog.KindMember {
		return 0
	}
	return inst.Record.Member.HP
}

// HasColor reports whether the instance's color list contains c.
func (inst *Instance) HasColor(c catalog.Color) bool {
	var colors []catalog.Color
	switch inst.Record.Kind {
	case catalog.KindMember:
		colors = inst.Record.Member.Colors
	case catalog.KindCheer:
		colors = []catalog.Color{inst.Record.Cheer.Color}
	case catalog.KindLead:
		colors = []catalog.Color{inst.Record.Lead.Color}
	}
	for _, cc := range colors {
		if cc == c {
			return true
		}
	}
	return false
}
