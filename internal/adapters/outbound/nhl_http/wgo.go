package nhl_http

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/core/engine"
	"github.com/FHFHockey-dev/fhfhockey.com-sub005/internal/telemetry"
)

const summaryDateLayout = "2006-01-02"

type summaryResponse struct {
	Data []struct {
		TeamFullName   string   `json:"teamFullName"`
		GameDate       string   `json:"gameDate"`
		PowerPlayPct   *float64 `json:"powerPlayPct"`
		PenaltyKillPct *float64 `json:"penaltyKillPct"`
		PenaltiesDrawn int      `json:"penaltiesDrawn"`
		PenaltiesTaken int      `json:"penalties"`
	} `json:"data"`
}

// FetchSpecialTeams pulls the per-game team summary report for the
// window and maps it to special-teams lines. Satisfies
// engine.SpecialTeamsSource.
func (c *Client) FetchSpecialTeams(ctx context.Context, start, end time.Time) ([]engine.SpecialTeams, error) {
	cayenne := fmt.Sprintf(`gameDate>="%s" and gameDate<="%s" and gameTypeId=2`,
		start.UTC().Format(summaryDateLayout), end.UTC().Format(summaryDateLayout))

	query := url.Values{}
	query.Set("isAggregate", "false")
	query.Set("isGame", "true")
	query.Set("limit", "-1")
	query.Set("cayenneExp", cayenne)

	var resp summaryResponse
	if err := c.get(ctx, "/en/team/summary", query, &resp); err != nil {
		return nil, err
	}

	out := make([]engine.SpecialTeams, 0, len(resp.Data))
	for _, d := range resp.Data {
		date, err := time.Parse(summaryDateLayout, d.GameDate)
		if err != nil {
			telemetry.Warnf("nhl_http: skipping summary row with bad date %q", d.GameDate)
			continue
		}
		out = append(out, engine.SpecialTeams{
			Team:           d.TeamFullName,
			Date:           date,
			PPPct:          d.PowerPlayPct,
			PKPct:          d.PenaltyKillPct,
			PenaltiesDrawn: d.PenaltiesDrawn,
			PenaltiesTaken: d.PenaltiesTaken,
		})
	}
	return out, nil
}
