package models

import "time"

// File import projection: an append-only hierarchy of import log -> file ->
// line rows. Nothing updates these rows after insert.

type FileImportLog struct {
	EstateId        string `gorm:"primaryKey;size:36" json:"estate_id"`
	FileImportLogId string `gorm:"primaryKey;size:36" json:"file_import_log_id"`

	ImportLogDateTime time.Time `json:"import_log_date_time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileImportLog) TableName() string {
	return "file_import_logs"
}

type FileImportLogFile struct {
	EstateId        string `gorm:"primaryKey;size:36" json:"estate_id"`
	FileImportLogId string `gorm:"primaryKey;size:36" json:"file_import_log_id"`
	FileId          string `gorm:"primaryKey;size:36" json:"file_id"`

	MerchantId       string    `gorm:"size:36" json:"merchant_id"`
	OriginalFileName string    `gorm:"size:255" json:"original_file_name"`
	FilePath         string    `gorm:"size:512" json:"file_path"`
	FileProfileId    string    `gorm:"size:36" json:"file_profile_id"`
	FileReceivedDateTime time.Time `json:"file_received_date_time"`
	UserId           string    `gorm:"size:36" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileImportLogFile) TableName() string {
	return "file_import_log_files"
}

type FileLine struct {
	EstateId   string `gorm:"primaryKey;size:36" json:"estate_id"`
	FileId     string `gorm:"primaryKey;size:36" json:"file_id"`
	LineNumber int    `gorm:"primaryKey" json:"line_number"`

	LineData  string    `gorm:"type:text" json:"line_data"`
	AddedDateTime time.Time `json:"added_date_time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FileLine) TableName() string {
	return "file_lines"
}
