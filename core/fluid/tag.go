package fluid

import "sort"

// Tag identifies one fluid in the library. The zero value is not a valid
// tag; callers must pick one explicitly.
type Tag string

const (
	RingerLactate      Tag = "ringer_lactate"
	NormalSaline       Tag = "normal_saline_0.9"
	D5NormalSaline     Tag = "dextrose_5_normal_saline"
	ReSoMal            Tag = "resomal_rehydration_sol"
	PackedRBC          Tag = "packed_red_blood_cells"
	Albumin5Percent    Tag = "albumin_5_percent"
	OralRehydration    Tag = "oral_rehydration_solution"
	HalfNormalSaline   Tag = "half_normal_saline"
	D5HalfNormalSaline Tag = "dextrose_5_half_normal_saline"
)

var validTags = map[Tag]bool{
	RingerLactate:      true,
	NormalSaline:       true,
	D5NormalSaline:     true,
	ReSoMal:            true,
	PackedRBC:          true,
	Albumin5Percent:    true,
	OralRehydration:    true,
	HalfNormalSaline:   true,
	D5HalfNormalSaline: true,
}

// IsValid reports whether t is a recognized fluid tag.
func (t Tag) IsValid() bool { return validTags[t] }

// ValidTags returns every recognized fluid tag, sorted for deterministic
// output (error messages, CLI help text).
func ValidTags() []Tag {
	tags := make([]Tag, 0, len(validTags))
	for t := range validTags {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
