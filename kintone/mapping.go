package kintone

import (
	"regexp"
	"strings"

	"dispatchboard/entity"
)

// SkipDestination reports whether a container row must be excluded from the
// board. The backend query already filters these; this mirrors it client-side
// so an excluded row is never acknowledged by mistake.
func SkipDestination(dest string) bool {
	s := strings.TrimSpace(dest)
	if s == "" {
		return false
	}
	u := strings.ToUpper(s)
	return strings.Contains(u, "FEEDER") || strings.Contains(u, "POSITION")
}

var (
	spaceRe        = regexp.MustCompile(`\s+`)
	leadCompanyRe  = regexp.MustCompile(`^\s*(株式会社|（株）|\(株\)|有限会社|（有）|\(有\)|合同会社|（同）|\(同\)|合資会社|合名会社)\s*`)
	trailCompanyRe = regexp.MustCompile(`\s*(株式会社|（株）|\(株\)|有限会社|（有）|\(有\)|合同会社|（同）|\(同\)|合資会社|合名会社)\s*$`)
	midCompanyRe   = regexp.MustCompile(`\s*(株式会社|有限会社|合同会社)\s*`)
	midAbbrevRe    = regexp.MustCompile(`\s*(（株）|\(株\)|（有）|\(有\)|（同）|\(同\))\s*`)
)

// StripCompanyTokens removes corporate-entity tokens from a destination name
// for display. Mid-string removal is deliberately conservative.
func StripCompanyTokens(dest string) string {
	s := strings.TrimSpace(dest)
	if s == "" {
		return ""
	}
	s = spaceRe.ReplaceAllString(s, " ")
	s = leadCompanyRe.ReplaceAllString(s, "")
	s = trailCompanyRe.ReplaceAllString(s, "")
	s = midCompanyRe.ReplaceAllString(s, " ")
	s = midAbbrevRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// ResolvePickupYardGroup buckets a free-text pickup yard into the fixed
// delivery-lane taxonomy. Unmatched non-empty yards land in その他.
func ResolvePickupYardGroup(pickupYard string) string {
	text := strings.TrimSpace(pickupYard)
	if text == "" {
		return ""
	}
	for _, name := range []string{"大井", "青海", "品川", "本牧", "中防"} {
		if strings.Contains(text, name) {
			return name
		}
	}
	return "その他"
}

// containerSize maps a raw size field ("40F", "40HC", "20F", ...) to the size class.
func containerSize(raw string) entity.Size {
	if strings.Contains(raw, "40") {
		return entity.Size40
	}
	return entity.Size20
}

// chassisSize maps the chassis size field, which is exactly "20F" or "40F".
func chassisSize(raw string) entity.Size {
	if raw == "40F" {
		return entity.Size40
	}
	return entity.Size20
}

// chassisAxle maps the Japanese chassis type label to the closed classifier set.
func chassisAxle(raw string) entity.AxleKind {
	switch raw {
	case "1軸":
		return entity.Axle1
	case "2軸":
		return entity.Axle2
	case "3軸":
		return entity.Axle3
	case "2個積", "2個積み":
		return entity.Axle2Stack
	case "兼用":
		return entity.AxleBoth
	default:
		return entity.AxleMG
	}
}

// dateKey turns the feed date "2024-11-28" into the board's "11/28" key.
func dateKey(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "-")
	if len(parts) < 3 {
		return ""
	}
	return parts[1] + "/" + parts[2]
}

// driverKind maps the 区分 field to owned/outsourced.
func driverKind(raw string) entity.DriverKind {
	switch strings.TrimSpace(raw) {
	case "自車", "自社":
		return entity.DriverOwned
	case "傭車":
		return entity.DriverOutsourced
	default:
		return entity.DriverUnknown
	}
}
