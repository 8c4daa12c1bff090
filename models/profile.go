package models

// Profile contains the account wide data for a single Destiny membership. Characters are kept
// in the order the platform returned them.
type Profile struct {
	GrimoireScore int
	Characters    CharacterList
}

// LastPlayedCharacter is the profile's most recently played character.
func (p *Profile) LastPlayedCharacter() *Character {
	if p == nil {
		return nil
	}

	return p.Characters.LastPlayed()
}
