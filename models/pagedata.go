package models

type HomeData struct {
	Tasks         []TaskToday
	Quote         Quote
	CountdownDays int
	HasTarget     bool
	CSRFtoken     string
	IsLoggedIn    bool
	Email         string
}

type TasksPageData struct {
	Tasks      []Task
	CSRFtoken  string
	IsLoggedIn bool
}

type SettingsData struct {
	Settings   UserSettings
	Seeded     bool
	CSRFtoken  string
	IsLoggedIn bool
	Email      string
}
