package catalog

import (
	"fmt"
	"sort"
	"strconv"

	"shunt/internal/config"
	"shunt/internal/textutil"
)

// Episode is one canonical catalog entry fetched from the remote
// listing. Records are immutable once fetched; corrections happen by
// re-running the fetch.
type Episode struct {
	// Code is the season/episode code in SyyyyEnn form. Specials use
	// season 0000.
	Code string `json:"season_episode_code"`
	// SeasonRaw is the season number as listed remotely (a year for
	// most seasons, 0 for specials).
	SeasonRaw int `json:"season_raw"`
	// EpInSeason is the episode number within the season, starting at 1.
	EpInSeason int `json:"ep_in_season"`
	Title      string `json:"title"`
	// AirDateISO is the first air date in YYYY-MM-DD form, or "" when
	// the remote listing omits it.
	AirDateISO string `json:"air_date_iso"`
	// AbsEpisode is the absolute episode number assigned 1..N over the
	// sorted listing; 0 until assigned.
	AbsEpisode int `json:"abs_episode"`
	// TargetFilename is the canonical filename derived from the record.
	TargetFilename string `json:"target_filename"`
}

// FormatCode renders a season/episode pair as SyyyyEnn.
func FormatCode(seasonRaw, epInSeason int) string {
	return fmt.Sprintf("S%04dE%02d", seasonRaw, epInSeason)
}

// IsSpecial reports whether the episode belongs to season 0.
func (e Episode) IsSpecial() bool {
	return e.SeasonRaw == 0
}

// Filename builds the canonical filename for an episode. Missing
// values render as stable placeholders so the separator layout never
// shifts: "0000-00-00" for the air date and "0" for the absolute number.
func Filename(e Episode, naming config.Naming) string {
	code := e.Code
	if code == "" {
		code = FormatCode(e.SeasonRaw, e.EpInSeason)
	}
	date := e.AirDateISO
	if date == "" {
		date = "0000-00-00"
	}
	title := textutil.SanitizeFileName(e.Title)
	if title == "" {
		title = "Unknown Title"
	}
	return fmt.Sprintf("%s %s - %s - %s - %s%s",
		naming.SeriesLabel, code, date, strconv.Itoa(e.AbsEpisode), title, naming.Extension)
}

// Finalize sorts episodes by season then episode-in-season, assigns
// absolute numbers 1..N in that order, and fills in target filenames.
// The sort is stable so remote listing order breaks ties.
func Finalize(episodes []Episode, naming config.Naming) {
	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].SeasonRaw != episodes[j].SeasonRaw {
			return episodes[i].SeasonRaw < episodes[j].SeasonRaw
		}
		return episodes[i].EpInSeason < episodes[j].EpInSeason
	})
	for i := range episodes {
		episodes[i].AbsEpisode = i + 1
		if episodes[i].Code == "" {
			episodes[i].Code = FormatCode(episodes[i].SeasonRaw, episodes[i].EpInSeason)
		}
		episodes[i].TargetFilename = Filename(episodes[i], naming)
	}
}

// ByAbsEpisode indexes a catalog by absolute episode number. The first
// record wins on duplicates.
func ByAbsEpisode(episodes []Episode) map[int]Episode {
	index := make(map[int]Episode, len(episodes))
	for _, ep := range episodes {
		if ep.AbsEpisode <= 0 {
			continue
		}
		if _, ok := index[ep.AbsEpisode]; !ok {
			index[ep.AbsEpisode] = ep
		}
	}
	return index
}
