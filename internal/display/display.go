// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, tables and logs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import (
	"strings"
	"unicode"
)

// --- Image Categories ---

var categories = map[string]string{
	"coverPhoto":                     "Cover Photo",
	"characteristicHeatExchanger":    "Characteristic Heat Exchanger",
	"characteristicOpeningStructure": "Characteristic Opening Structure",
	"other":                          "Other",
}

// Category returns the human-readable name for an image category code.
// Unknown codes are returned as-is.
func Category(code string) string {
	if name, ok := categories[code]; ok {
		return name
	}
	return code
}

// CategoryWithCode returns "Cover Photo (coverPhoto)" format.
func CategoryWithCode(code string) string {
	if name, ok := categories[code]; ok {
		return name + " (" + code + ")"
	}
	return code
}

// Requirement renders a category requirement as a short mark.
// "required" -> "yes", anything else -> "".
func Requirement(req string) string {
	if req == "required" {
		return "yes"
	}
	return ""
}

// --- Document Sections ---

var sections = map[string]string{
	"buildingData":                                    "Building Data",
	"certifierDetails":                                "Certifier Details",
	"validity":                                        "Validity",
	"usingAlternativeEnergy":                          "Alternative Energy",
	"boundaryAndOpeningStructures":                    "Boundary and Opening Structures",
	"modernisationProposalDetails":                    "Modernisation Proposals",
	"modernisationProposalsOfBuildingServicesSystems": "Building Service Systems",
	"calculationsPdfFileContent":                      "Calculations PDF",
	"photos":                                          "Photos",
}

// Section returns the human-readable name for a top-level document key.
// Keys without a registered name are split at camelCase boundaries.
func Section(key string) string {
	if name, ok := sections[key]; ok {
		return name
	}
	return words(key)
}

// SectionWithCode returns "Validity (validity)" format.
func SectionWithCode(key string) string {
	return Section(key) + " (" + key + ")"
}

// FieldPath humanizes a flat record key.
// "buildingData__buildingAddress__floor" -> "Building Data / Building Address / Floor"
func FieldPath(key string) string {
	parts := strings.Split(key, "__")
	for i, p := range parts {
		if i == 0 {
			parts[i] = Section(p)
			continue
		}
		parts[i] = words(p)
	}
	return strings.Join(parts, " / ")
}

// --- Conversion Outcomes ---

var outcomes = map[string]string{
	"converted": "Converted",
	"failed":    "Failed",
	"skipped":   "Skipped",
}

// Outcome returns the human-readable name for a batch item outcome.
func Outcome(code string) string {
	if name, ok := outcomes[code]; ok {
		return name
	}
	return code
}

// words splits a camelCase identifier into capitalised words.
// "siteInspectionDate" -> "Site Inspection Date"
func words(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
