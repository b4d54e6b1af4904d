package normalize

// field names one canonical attribute; keys lists the payload spellings
// tried for it, highest priority first. New payload shapes are supported
// by adding spellings here.
type field string

const (
	fieldGameID         field = "game_id"
	fieldWeek           field = "week"
	fieldHomeTeam       field = "home_team"
	fieldAwayTeam       field = "away_team"
	fieldHomeScore      field = "home_score"
	fieldAwayScore      field = "away_score"
	fieldHomeConference field = "home_conference"
	fieldAwayConference field = "away_conference"
	fieldIsLive         field = "is_live"
	fieldIsFinished     field = "is_finished"
	fieldIsUpcoming     field = "is_upcoming"
	fieldStatusText     field = "status_text"
	fieldKickoffEpoch   field = "kickoff_epoch"
	fieldKickoffISO     field = "kickoff_iso"
	fieldKickoffDate    field = "kickoff_date"
	fieldKickoffTime    field = "kickoff_time"

	fieldRank       field = "rank"
	fieldSchool     field = "school"
	fieldPoints     field = "points"
	fieldRecord     field = "record"
	fieldPrevious   field = "previous"
	fieldTeam       field = "team"
	fieldConference field = "conference"
	fieldTeamName   field = "team_name"
)

var keys = map[field][]string{
	fieldGameID:         {"id", "gameID", "game_id", "game.gameID"},
	fieldWeek:           {"week", "Week", "WEEK"},
	fieldHomeTeam:       {"home.names.short", "home.team", "home.name", "homeTeam", "home_team", "HOME"},
	fieldAwayTeam:       {"away.names.short", "away.team", "away.name", "awayTeam", "away_team", "AWAY"},
	fieldHomeScore:      {"home.score", "homeScore", "home_score"},
	fieldAwayScore:      {"away.score", "awayScore", "away_score"},
	fieldHomeConference: {"home.conference", "home.conferences.0.conferenceName", "homeConference", "home_conference", "conference"},
	fieldAwayConference: {"away.conference", "away.conferences.0.conferenceName", "awayConference", "away_conference"},
	fieldIsLive:         {"game_state.isLive", "gameState.isLive", "isLive"},
	fieldIsFinished:     {"game_state.isFinished", "gameState.isFinished", "isFinished"},
	fieldIsUpcoming:     {"game_state.isUpcoming", "gameState.isUpcoming", "isUpcoming"},
	fieldStatusText:     {"status", "gameState", "game_state"},
	fieldKickoffEpoch:   {"startTimeEpoch", "start_time_epoch"},
	fieldKickoffISO:     {"kickoff", "kickoffAt"},
	fieldKickoffDate:    {"date", "startDate"},
	fieldKickoffTime:    {"time", "startTime"},

	fieldRank:       {"RANK", "rank", "Rank"},
	fieldSchool:     {"SCHOOL", "school", "School", "team", "TEAM", "Team"},
	fieldPoints:     {"POINTS", "points", "Points"},
	fieldRecord:     {"RECORD", "record", "Record"},
	fieldPrevious:   {"PREVIOUS", "previous", "Previous", "previousRank", "previous_rank"},
	fieldTeam:       {"team", "TEAM", "Team", "School", "SCHOOL", "school", "name"},
	fieldConference: {"conference", "Conference", "CONFERENCE", "conf"},
	fieldTeamName:   {"name", "Name", "school", "School", "team", "TEAM", "Team"},
}

