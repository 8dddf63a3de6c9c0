package config

import "ccs/config/models"

// FindByAlias returns the first profile whose alias equals alias exactly.
func FindByAlias(profiles []models.Profile, alias string) (models.Profile, bool) {
	for _, p := range profiles {
		if p.Alias == alias {
			return p, true
		}
	}
	return models.Profile{}, false
}

// Aliases returns the alias of every profile in stored order.
func Aliases(profiles []models.Profile) []string {
	aliases := make([]string, 0, len(profiles))
	for _, p := range profiles {
		aliases = append(aliases, p.Alias)
	}
	return aliases
}
