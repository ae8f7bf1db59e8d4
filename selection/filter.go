package selection

// DiplomacyState is the relationship between two factions.
type DiplomacyState int

const (
	DiplomacyPeace DiplomacyState = iota
	DiplomacyWar
)

// Factions answers the two questions the priority filter needs: which
// factions the local player directly controls, and how any two factions
// stand diplomatically. Grounded on
// original_source/src/game/selection.c's allied_to_player_controllabe,
// which walks g_session's faction table and diplomacy_table directly;
// here the caller supplies both as small closures instead of exposing
// its whole faction/diplomacy model to this package.
type Factions struct {
	PlayerControlled int // bitmask, one bit per faction ID
	Diplomacy        func(a, b int) DiplomacyState
}

func (f Factions) controllable(factionID int) bool {
	return f.PlayerControlled&(1<<uint(factionID)) != 0
}

// alliedToPlayer reports whether some faction other than factionID is
// player-controllable and not at war with factionID. Ported from
// allied_to_player_controllabe: that function iterates every faction and
// returns true on the first one that is player-controllable and at peace
// with the candidate; it treats factionID itself (an allied, not
// player-owned faction) as never satisfying the self-check.
func (f Factions) alliedToPlayer(factionID int) bool {
	for other := 0; other < 32; other++ {
		if other == factionID {
			continue
		}
		if f.PlayerControlled&(1<<uint(other)) == 0 {
			continue
		}
		if f.Diplomacy == nil || f.Diplomacy(other, factionID) != DiplomacyWar {
			return true
		}
	}
	return false
}

// FilterByPriority applies the three-tier selection priority rule: if any
// selected entity belongs to a player-controlled faction, only
// player-controlled entities survive; else if any is allied to the
// player, only allied entities survive; else every selected entity is
// kept and the selection is classified enemy. Buildings are then dropped
// from the surviving set if it still contains at least one non-building
// entity. Grounded on sel_filter_and_set_type and sel_filter_buildings.
func FilterByPriority(ids []EntityID, visible []Candidate, factions Factions) ([]EntityID, Kind) {
	byID := make(map[EntityID]Candidate, len(visible))
	for _, v := range visible {
		byID[v.ID] = v
	}

	hasPlayer, hasAllied := false, false
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		if factions.controllable(c.FactionID) {
			hasPlayer = true
		} else if factions.alliedToPlayer(c.FactionID) {
			hasAllied = true
		}
	}

	var kind Kind
	var keep func(c Candidate) bool

	switch {
	case hasPlayer:
		kind = KindPlayer
		keep = func(c Candidate) bool { return factions.controllable(c.FactionID) }
	case hasAllied:
		kind = KindAllied
		keep = func(c Candidate) bool { return factions.alliedToPlayer(c.FactionID) }
	default:
		kind = KindEnemy
		keep = func(c Candidate) bool { return true }
	}

	filtered := ids[:0:0]
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || !keep(c) {
			continue
		}
		filtered = append(filtered, id)
	}

	return filterBuildings(filtered, byID), kind
}

// filterBuildings drops every building from ids if at least one
// non-building entity remains: units take priority over buildings.
func filterBuildings(ids []EntityID, byID map[EntityID]Candidate) []EntityID {
	hasUnit := false
	for _, id := range ids {
		if c, ok := byID[id]; ok && !c.Building {
			hasUnit = true
			break
		}
	}
	if !hasUnit {
		return ids
	}

	out := ids[:0:0]
	for _, id := range ids {
		if c, ok := byID[id]; ok && c.Building {
			continue
		}
		out = append(out, id)
	}
	return out
}
