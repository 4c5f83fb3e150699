package catalog

import "strings"

// specIndex stores specs under normalized model, part number, and
// "brand model" keys. Keys keep their insertion order so fuzzy matches
// are deterministic.
type specIndex struct {
	keys  []string
	specs map[string]*Spec
}

func newSpecIndex() *specIndex {
	return &specIndex{specs: make(map[string]*Spec)}
}

// add indexes spec under every identifying key the product has.
// Re-adding a key overwrites the spec but keeps the key's original
// position.
func (ix *specIndex) add(brand, model, partNumber string, spec *Spec) {
	modelKey := normalizeKey(model)
	partKey := normalizeKey(partNumber)
	brandKey := normalizeKey(brand)

	ix.set(modelKey, spec)
	ix.set(partKey, spec)
	if brandKey != "" && modelKey != "" {
		ix.set(brandKey+" "+modelKey, spec)
	}
}

func (ix *specIndex) set(key string, spec *Spec) {
	if key == "" {
		return
	}
	if _, ok := ix.specs[key]; !ok {
		ix.keys = append(ix.keys, key)
	}
	ix.specs[key] = spec
}

// lookup finds the spec for a model or part number. Exact matches win;
// otherwise a substring match in either direction is accepted when both
// the search key and the candidate are at least four characters. Keys
// shorter than three characters never match.
func (ix *specIndex) lookup(modelNumber string) *Spec {
	key := normalizeKey(modelNumber)
	if len(key) < 3 {
		return nil
	}
	if spec, ok := ix.specs[key]; ok {
		return spec
	}
	if len(key) >= 4 {
		for _, k := range ix.keys {
			if len(k) >= 4 && (strings.Contains(k, key) || strings.Contains(key, k)) {
				return ix.specs[k]
			}
		}
	}
	return nil
}

func (ix *specIndex) len() int { return len(ix.keys) }

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
