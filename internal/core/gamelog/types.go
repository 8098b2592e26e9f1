package gamelog

import "time"

// Situation tags which strength state a log row describes.
type Situation string

const (
	SituationAll Situation = "all"
	Situation5v5 Situation = "5v5"
	SituationPP  Situation = "pp"
	SituationPK  Situation = "pk"
)

// GameLog is one team's rate line for one game date. Rates are per 60
// minutes of the row's situation; PDO is the all-situations value
// carried onto the 5v5 row by the repository contract.
type GameLog struct {
	Team      string
	Date      time.Time
	Situation Situation

	CF60  float64 // shot attempts for
	CA60  float64 // shot attempts against
	SF60  float64
	SA60  float64
	GF60  float64
	GA60  float64
	XGF60 float64
	XGA60 float64

	HDCF60 float64 // high-danger chances for
	HDCA60 float64

	PDO    float64 // all-situations, ~1.000 neutral; 0 means unavailable
	HasPDO bool

	PPXGF60 float64 // power-play expected goals for per 60
	PKXGA60 float64 // penalty-kill expected goals against per 60

	PenDrawn60 float64
	PenTaken60 float64
}

// Rate60 converts a raw event count into a per-60 rate for the given
// time on ice in seconds. Zero TOI yields zero.
func Rate60(count float64, toiSeconds float64) float64 {
	if toiSeconds <= 0 {
		return 0
	}
	return count * 3600.0 / toiSeconds
}
