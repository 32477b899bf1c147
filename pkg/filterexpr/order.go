package filterexpr

import (
	"errors"
	"fmt"
	"strings"
)

// OrderSchema describes ordering defaults and whitelisted keys.
type OrderSchema struct {
	DefaultPrimary     string
	DefaultPrimaryDesc bool
	FallbackKey        string
	FallbackDesc       bool
	Fields             []string
}

// Order is a parsed order_by clause of at most two keys.
type Order struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// ParseOrderBy parses "key [asc|desc][, key [asc|desc]]". Missing keys are
// filled from the schema defaults so the result always orders deterministically.
func ParseOrderBy(raw string, schema OrderSchema) (Order, error) { //nolint:gocognit,gocyclo // parsing DSL entails validation branches for readability
	allowed := make(map[string]struct{}, len(schema.Fields))
	for _, f := range schema.Fields {
		allowed[f] = struct{}{}
	}

	if schema.DefaultPrimary == "" {
		return Order{}, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return Order{}, errors.New("order schema fallback key required")
	}
	if _, ok := allowed[schema.DefaultPrimary]; !ok {
		return Order{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if _, ok := allowed[schema.FallbackKey]; !ok {
		return Order{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}

	ord := Order{
		PrimaryKey:  schema.DefaultPrimary,
		PrimaryDesc: schema.DefaultPrimaryDesc,
	}

	raw = strings.TrimSpace(raw)
	seen := make(map[string]struct{}, 2)
	idx := 0
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if _, ok := allowed[key]; !ok {
			return Order{}, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return Order{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return Order{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return Order{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey, ord.PrimaryDesc = key, desc
		case 1:
			ord.SecondaryKey, ord.SecondaryDesc = key, desc
		default:
			return Order{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if ord.SecondaryKey == "" {
		ord.SecondaryKey = schema.FallbackKey
		ord.SecondaryDesc = schema.FallbackDesc
	}
	if ord.SecondaryKey == ord.PrimaryKey {
		for _, key := range schema.Fields {
			if key != ord.PrimaryKey {
				ord.SecondaryKey, ord.SecondaryDesc = key, false
				break
			}
		}
		if ord.SecondaryKey == ord.PrimaryKey {
			return Order{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
	}
	return ord, nil
}
