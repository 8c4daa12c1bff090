package models

// WeeklyActivity is a featured activity together with the modifiers active on it this week.
type WeeklyActivity struct {
	Activity  ActivityReference
	Modifiers Modifiers
}

// WeeklyProgram is the set of featured activities that rotate with the weekly reset.
// Slots the API did not return are nil; modifier sequences are never nil.
type WeeklyProgram struct {
	Nightfall      *WeeklyActivity
	FeaturedRaid   *WeeklyActivity
	ElderChallenge Modifiers
	WeeklyCrucible *ActivityReference
	HeroicStrike   Modifiers
}
