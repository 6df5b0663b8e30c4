package product

import "encoding/json"

type PaymentMethod struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// PaymentMethods always holds {key,name} pairs internally. The backend
// returns objects on read but accepts and occasionally echoes plain keys, so
// decoding normalizes both wire shapes at the boundary.
type PaymentMethods []PaymentMethod

func (pm *PaymentMethods) UnmarshalJSON(data []byte) error {
	var objs []PaymentMethod
	if err := json.Unmarshal(data, &objs); err == nil {
		*pm = objs
		return nil
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*pm = MethodsFromKeys(keys)
	return nil
}

// Keys extracts the plain payment keys, the shape product metadata is
// written back to the backend with.
func (pm PaymentMethods) Keys() []string {
	keys := make([]string, 0, len(pm))
	for _, m := range pm {
		keys = append(keys, m.Key)
	}
	return keys
}

// PaymentOptions is the fixed payment method catalog. It is process-wide
// configuration, never fetched from the backend.
func PaymentOptions() []PaymentMethod {
	return []PaymentMethod{
		{Key: "boleto", Name: "Boleto"},
		{Key: "pix", Name: "Pix"},
		{Key: "cash", Name: "Dinheiro"},
		{Key: "card", Name: "Cartão de Crédito"},
		{Key: "deposit", Name: "Depósito Bancário"},
	}
}

func PaymentMethodByKey(key string) (PaymentMethod, bool) {
	for _, m := range PaymentOptions() {
		if m.Key == key {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// MethodsFromKeys expands selected keys to {key,name} pairs, preserving
// catalog order. Unknown keys keep the key as the display name.
func MethodsFromKeys(keys []string) PaymentMethods {
	selected := make(map[string]bool, len(keys))
	for _, k := range keys {
		selected[k] = true
	}

	out := make(PaymentMethods, 0, len(keys))
	for _, m := range PaymentOptions() {
		if selected[m.Key] {
			out = append(out, m)
			delete(selected, m.Key)
		}
	}
	for _, k := range keys {
		if selected[k] {
			out = append(out, PaymentMethod{Key: k, Name: k})
			delete(selected, k)
		}
	}
	return out
}
