package player

import "houseflip/internal/fault"

// Skill is the closed set of player skills. Anything else coming in from the
// API or a save file is rejected at the boundary.
type Skill string

const (
	SkillNegotiation Skill = "negotiation"
	SkillHandiness   Skill = "handiness"
	SkillMarketing   Skill = "marketing"
)

// AllSkills lists every skill in display order.
func AllSkills() []Skill {
	return []Skill{SkillNegotiation, SkillHandiness, SkillMarketing}
}

func ParseSkill(name string) (Skill, error) {
	switch Skill(name) {
	case SkillNegotiation, SkillHandiness, SkillMarketing:
		return Skill(name), nil
	}
	return "", fault.Validationf("unknown skill %q", name)
}
