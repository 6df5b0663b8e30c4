package product

// Criteria is the hybrid filter sent to the backend. A nil IsNew means the
// condition filter is off entirely, which is different from either value.
// AcceptTrade is tri-state the same way: the modal always sends the switch
// position, while the empty criteria of an initial or reset fetch omit it.
type Criteria struct {
	IsNew          *bool
	AcceptTrade    *bool
	PaymentMethods []string
	Query          string
}

// OwnerPreset is one of the five mutually exclusive presets applied locally
// over the current user's own listings.
type OwnerPreset string

const (
	PresetAll        OwnerPreset = "all"
	PresetActive     OwnerPreset = "actives"
	PresetActiveNew  OwnerPreset = "activesAndNew"
	PresetActiveUsed OwnerPreset = "activeAndUsed"
	PresetInactive   OwnerPreset = "deactivate"
)

func OwnerPresets() []OwnerPreset {
	return []OwnerPreset{PresetAll, PresetActive, PresetActiveNew, PresetActiveUsed, PresetInactive}
}

// ApplyOwnerPreset filters already-fetched owner listings. No backend round
// trip is involved.
func ApplyOwnerPreset(preset OwnerPreset, products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		switch preset {
		case PresetActive:
			if !p.Active() {
				continue
			}
		case PresetActiveNew:
			if !p.Active() || !p.IsNew {
				continue
			}
		case PresetActiveUsed:
			if !p.Active() || p.IsNew {
				continue
			}
		case PresetInactive:
			if p.Active() {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
