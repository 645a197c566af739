package provision

import (
	"fmt"
	"strings"
)

// Normalize converts the raw caller-supplied resource properties into a
// canonical GroupMembership. groups is the platform's closed set of
// recognized group names; the result carries one binding per group, in the
// given order, so iteration downstream is deterministic.
//
// A string value is split on commas, each piece trimmed and empty pieces
// dropped. A sequence value is passed through with the same trim/drop
// applied per element. Duplicates are preserved; collapsing them is the
// engine's idempotency concern, not the normalizer's. Unknown keys are
// ignored and recognized groups absent from the input normalize to an empty
// user list.
func Normalize(props map[string]any, groups []string) (GroupMembership, error) {
	membership := make(GroupMembership, 0, len(groups))
	for _, group := range groups {
		raw, ok := props[group]
		if !ok {
			membership = append(membership, GroupUsers{Group: group})
			continue
		}
		users, err := normalizeValue(raw)
		if err != nil {
			return nil, ErrMalformedInput(fmt.Sprintf("property %q: %v", group, err)).
				WithResource("group", group)
		}
		membership = append(membership, GroupUsers{Group: group, Users: users})
	}
	return membership, nil
}

func normalizeValue(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return splitList(v), nil
	case []string:
		return trimAll(v), nil
	case []any:
		elems := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("sequence element of type %T is not a string", item)
			}
			elems = append(elems, s)
		}
		return trimAll(elems), nil
	default:
		return nil, fmt.Errorf("value of type %T is neither a string nor a sequence of strings", raw)
	}
}

func splitList(s string) []string {
	return trimAll(strings.Split(s, ","))
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
