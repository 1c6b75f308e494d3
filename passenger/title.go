package passenger

import "strings"

const (
	TitleMr     = "Mr"
	TitleMrs    = "Mrs"
	TitleMiss   = "Miss"
	TitleMaster = "Master"
	TitleRare   = "Rare"
)

// Title parses the honorific out of a manifest name and normalizes it. Names
// follow the "Surname, Title. Given Names" layout.
//
//     Title("Braund, Mr. Owen Harris")               // "Mr"
//     Title("Cumings, Mrs. John Bradley")            // "Mrs"
//     Title("Rothes, the Countess. of (Lucy Noel)")  // "Rare"
//
// An empty string is returned if no honorific can be found.
func Title(name string) string {
	i := strings.Index(name, ",")
	if i < 0 {
		return ""
	}

	rest := name[i+1:]

	j := strings.Index(rest, ".")
	if j < 0 {
		return ""
	}

	raw := strings.TrimSpace(rest[:j])
	if raw == "" {
		return ""
	}

	switch strings.ToLower(raw) {
	case "mr":
		return TitleMr
	case "mrs", "mme":
		return TitleMrs
	case "miss", "mlle", "ms":
		return TitleMiss
	case "master":
		return TitleMaster
	}

	return TitleRare
}
