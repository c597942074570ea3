package config

type Config struct {
	Theme            string `json:"theme"`
	ConfirmDelete    bool   `json:"confirmDelete"`
	ShowDescriptions bool   `json:"showDescriptions"`
	LogLevel         string `json:"logLevel"`
	LogFile          string `json:"logFile"`
	LastBackupDir    string `json:"lastBackupDir"`
}

type fileConfig struct {
	Theme            *string `json:"theme"`
	ConfirmDelete    *bool   `json:"confirmDelete"`
	ShowDescriptions *bool   `json:"showDescriptions"`
	LogLevel         *string `json:"logLevel"`
	LogFile          *string `json:"logFile"`
	LastBackupDir    *string `json:"lastBackupDir"`
}
