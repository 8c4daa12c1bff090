package models

import (
	"fmt"
	"time"
)

// ClassType is the character class enum used in the Bungie API responses.
type ClassType int

// Class Enum value passed in some of the Destiny API responses
const (
	TitanClassType   ClassType = 0
	HunterClassType  ClassType = 1
	WarlockClassType ClassType = 2
	UnknownClassType ClassType = 3
)

func (c ClassType) String() string {
	switch c {
	case TitanClassType:
		return "titan"
	case HunterClassType:
		return "hunter"
	case WarlockClassType:
		return "warlock"
	}

	return "unknown"
}

// Character is a single in-game character belonging to exactly one Destiny account.
type Character struct {
	Owner          DestinyID
	CharacterID    string
	ClassType      ClassType
	DateLastPlayed time.Time
}

// CharacterList represents a slice of Character pointers.
type CharacterList []*Character

func (c *Character) String() string {
	return fmt.Sprintf("Character{ID: %s, Class: %s, LastPlayed: %v}",
		c.CharacterID, c.ClassType, c.DateLastPlayed)
}

// LastPlayed returns the character with the most recent last played date. The earliest
// character in the list wins a tie. nil is returned for an empty list.
func (charList CharacterList) LastPlayed() *Character {
	var latest *Character
	for _, char := range charList {
		if char == nil {
			continue
		}
		if latest == nil || char.DateLastPlayed.After(latest.DateLastPlayed) {
			latest = char
		}
	}

	return latest
}

// FindCharacterFromID returns the character with the given ID or nil.
func (charList CharacterList) FindCharacterFromID(characterID string) *Character {
	for _, char := range charList {
		if char != nil && char.CharacterID == characterID {
			return char
		}
	}

	return nil
}
