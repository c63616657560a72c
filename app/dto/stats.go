package dto

type AppStat struct {
	AppName      string `json:"app_name"`
	TotalSecs    int    `json:"total_secs"`
	Productivity int    `json:"productivity"`
}

type StatsResponse struct {
	ProductiveSecs  int       `json:"productive_secs"`
	NeutralSecs     int       `json:"neutral_secs"`
	DistractingSecs int       `json:"distracting_secs"`
	TopApps         []AppStat `json:"top_apps"`
}

type DailyStats struct {
	Date            int64 `json:"date"`
	ProductiveSecs  int   `json:"productive_secs"`
	NeutralSecs     int   `json:"neutral_secs"`
	DistractingSecs int   `json:"distracting_secs"`
}

type WeeklyStatsResponse struct {
	Days                 []DailyStats `json:"days"`
	TotalProductiveSecs  int          `json:"total_productive_secs"`
	TotalNeutralSecs     int          `json:"total_neutral_secs"`
	TotalDistractingSecs int          `json:"total_distracting_secs"`
	TopApps              []AppStat    `json:"top_apps"`
}
