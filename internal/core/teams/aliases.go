package teams

// builtinAbbrevs maps normalized team names to stable abbreviations.
// Covers the league plus the name variants the upstream feeds emit.
// The directory falls back to this table when the club API is
// disabled or unreachable.
var builtinAbbrevs = map[string]string{
	"anaheim ducks":         "ANA",
	"boston bruins":         "BOS",
	"buffalo sabres":        "BUF",
	"calgary flames":        "CGY",
	"carolina hurricanes":   "CAR",
	"chicago blackhawks":    "CHI",
	"colorado avalanche":    "COL",
	"columbus blue jackets": "CBJ",
	"dallas stars":          "DAL",
	"detroit red wings":     "DET",
	"edmonton oilers":       "EDM",
	"florida panthers":      "FLA",
	"los angeles kings":     "LAK",
	"minnesota wild":        "MIN",
	"montreal canadiens":    "MTL",
	"nashville predators":   "NSH",
	"new jersey devils":     "NJD",
	"new york islanders":    "NYI",
	"new york rangers":      "NYR",
	"ottawa senators":       "OTT",
	"philadelphia flyers":   "PHI",
	"pittsburgh penguins":   "PIT",
	"san jose sharks":       "SJS",
	"seattle kraken":        "SEA",
	"st. louis blues":       "STL",
	"tampa bay lightning":   "TBL",
	"toronto maple leafs":   "TOR",
	"utah hockey club":      "UTA",
	"vancouver canucks":     "VAN",
	"vegas golden knights":  "VGK",
	"washington capitals":   "WSH",
	"winnipeg jets":         "WPG",

	// feed variants
	"st louis blues":       "STL",
	"la kings":             "LAK",
	"ny islanders":         "NYI",
	"ny rangers":           "NYR",
	"utah mammoth":         "UTA",
	"vegas knights":        "VGK",
	"tampa bay":            "TBL",
	"columbus bluejackets": "CBJ",
	"montreal":             "MTL",
	"arizona coyotes":      "ARI",
	"phoenix coyotes":      "ARI",
}
