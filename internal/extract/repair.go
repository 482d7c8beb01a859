package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// repairRule is one named, auditable tolerance for a known provider
// deviation: a precondition checked against the decoded document and a
// transform applied when it holds.
type repairRule struct {
	name  string
	apply func(m map[string]any) bool
}

var repairRules = []repairRule{
	{
		// "price list" / "Price_List" instead of "price_list"
		name: "document_type_underscore",
		apply: func(m map[string]any) bool {
			v, ok := m["document_type"].(string)
			if !ok {
				return false
			}
			fixed := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), " ", "_"))
			if fixed == v {
				return false
			}
			m["document_type"] = fixed
			return true
		},
	},
	{
		name: "document_type_unknown_default",
		apply: func(m map[string]any) bool {
			v, ok := m["document_type"].(string)
			if ok && v != "" {
				return false
			}
			m["document_type"] = "unknown"
			return true
		},
	},
	{
		// optional contact block missing or null
		name: "missing_supplier_block",
		apply: func(m map[string]any) bool {
			changed := false
			for _, k := range []string{"supplier_name", "supplier_contact", "currency", "language"} {
				if v, ok := m[k]; !ok || v == nil {
					m[k] = ""
					changed = true
				}
			}
			return changed
		},
	},
	{
		// a single product object instead of a one-element array
		name: "products_single_object",
		apply: func(m map[string]any) bool {
			obj, ok := m["products"].(map[string]any)
			if !ok {
				return false
			}
			m["products"] = []any{obj}
			return true
		},
	},
	{
		name: "products_null_array",
		apply: func(m map[string]any) bool {
			if v, ok := m["products"]; ok && v != nil {
				return false
			}
			m["products"] = []any{}
			return true
		},
	},
	{
		// per-product fixes: missing confidence, out-of-range confidence,
		// numeric names
		name: "product_field_defaults",
		apply: func(m map[string]any) bool {
			items, ok := m["products"].([]any)
			if !ok {
				return false
			}
			changed := false
			for _, it := range items {
				p, ok := it.(map[string]any)
				if !ok {
					continue
				}
				switch c := p["confidence"].(type) {
				case nil:
					p["confidence"] = 0.5
					changed = true
				case float64:
					if c < 0 {
						p["confidence"] = 0.0
						changed = true
					} else if c > 1 {
						p["confidence"] = 1.0
						changed = true
					}
				}
				if _, ok := p["name"].(string); !ok {
					if p["name"] != nil {
						p["name"] = fmt.Sprintf("%v", p["name"])
						changed = true
					}
				}
				for _, k := range []string{"unit", "category"} {
					if _, ok := p[k]; !ok {
						p[k] = nil
						changed = true
					}
				}
				if _, ok := p["price"]; !ok {
					p["price"] = nil
					changed = true
				}
			}
			return changed
		},
	},
	{
		// drop keys outside the envelope so additionalProperties holds
		name: "drop_unknown_keys",
		apply: func(m map[string]any) bool {
			allowed := map[string]bool{
				"document_type": true, "supplier_name": true,
				"supplier_contact": true, "currency": true,
				"language": true, "products": true,
			}
			changed := false
			for k := range m {
				if !allowed[k] {
					delete(m, k)
					changed = true
				}
			}
			if items, ok := m["products"].([]any); ok {
				allowedProduct := map[string]bool{
					"name": true, "price": true, "unit": true,
					"category": true, "confidence": true,
				}
				for _, it := range items {
					p, ok := it.(map[string]any)
					if !ok {
						continue
					}
					for k := range p {
						if !allowedProduct[k] {
							delete(p, k)
							changed = true
						}
					}
				}
			}
			return changed
		},
	},
}

// repairPartial applies the named repair rules to a raw partial result and
// returns the repaired document plus the names of the rules that fired.
func repairPartial(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("repair: decode: %w", err)
	}

	var applied []string
	for _, rule := range repairRules {
		if rule.apply(m) {
			applied = append(applied, rule.name)
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, applied, fmt.Errorf("repair: encode: %w", err)
	}
	return out, applied, nil
}
