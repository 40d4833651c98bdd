package domain

import "strings"

// Profile es el perfil público de un trader en Gamma.
type Profile struct {
	Address   string
	Username  string
	Pseudonym string
	Name      string
}

// DisplayName devuelve el primer campo no vacío en orden username > pseudonym > name.
// Si ninguno existe usa la dirección abreviada.
func (p Profile) DisplayName() string {
	for _, v := range []string{p.Username, p.Pseudonym, p.Name} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ShortAddress(p.Address)
}
