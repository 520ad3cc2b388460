package policy

import "sort"

// mergedSections are the config sections merged key-by-key on update.
// context_rules is deliberately absent: ordered rule lists are replaced
// wholesale so callers can reorder or delete rules.
var mergedSections = map[string]bool{
	"roles":               true,
	"functions":           true,
	"severity_rules":      true,
	"output_restrictions": true,
	"function_chaining":   true,
	"decision_thresholds": true,
	"custom_prompts":      true,
}

// SectionChange records how one config section changed during an update.
type SectionChange struct {
	Added    []string `json:"added,omitempty"`
	Updated  []string `json:"updated,omitempty"`
	Removed  []string `json:"removed,omitempty"`
	Replaced bool     `json:"replaced,omitempty"`
	OldCount int      `json:"old_count,omitempty"`
	NewCount int      `json:"new_count,omitempty"`
}

// Diff maps section names to their change records. Returned alongside the
// merged config for audit trails.
type Diff map[string]SectionChange

// DeepMerge merges patch into base recursively, with patch values taking
// precedence. Nested maps are merged key-by-key; everything else is replaced.
// Neither input is mutated.
func DeepMerge(base, patch map[string]any) map[string]any {
	if len(base) == 0 {
		return copyMap(patch)
	}
	if len(patch) == 0 {
		return copyMap(base)
	}
	result := copyMap(base)
	for key, value := range patch {
		existing, ok := result[key]
		existingMap, existingIsMap := existing.(map[string]any)
		valueMap, valueIsMap := value.(map[string]any)
		if ok && existingIsMap && valueIsMap {
			result[key] = DeepMerge(existingMap, valueMap)
		} else {
			result[key] = value
		}
	}
	return result
}

// MergeConfig applies an update patch to a stored policy config. Dictionary
// sections are deep-merged, context_rules is replaced wholesale, and any
// other top-level key is replaced. The returned Diff describes the change
// per touched section.
func MergeConfig(base, patch map[string]any) (map[string]any, Diff) {
	result := copyMap(base)
	diff := Diff{}

	for key, value := range patch {
		switch {
		case key == "context_rules":
			oldRules, _ := result[key].([]any)
			newRules, _ := value.([]any)
			diff[key] = SectionChange{
				Replaced: true,
				OldCount: len(oldRules),
				NewCount: len(newRules),
			}
			result[key] = value

		case mergedSections[key]:
			baseSection, baseOK := result[key].(map[string]any)
			patchSection, patchOK := value.(map[string]any)
			if !baseOK || !patchOK {
				diff[key] = SectionChange{Replaced: true}
				result[key] = value
				continue
			}
			merged := DeepMerge(baseSection, patchSection)
			diff[key] = sectionKeyDiff(baseSection, merged)
			result[key] = merged

		default:
			diff[key] = SectionChange{Replaced: true}
			result[key] = value
		}
	}
	return result, diff
}

func sectionKeyDiff(before, after map[string]any) SectionChange {
	change := SectionChange{}
	for key := range after {
		if _, ok := before[key]; ok {
			change.Updated = append(change.Updated, key)
		} else {
			change.Added = append(change.Added, key)
		}
	}
	for key := range before {
		if _, ok := after[key]; !ok {
			change.Removed = append(change.Removed, key)
		}
	}
	sort.Strings(change.Added)
	sort.Strings(change.Updated)
	sort.Strings(change.Removed)
	return change
}

func copyMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for key, value := range m {
		if nested, ok := value.(map[string]any); ok {
			result[key] = copyMap(nested)
		} else {
			result[key] = value
		}
	}
	return result
}
