package database

import (
	"database/sql"
)

type Resume struct {
	ID          int64
	Name        string
	FilePath    sql.NullString
	Text        sql.NullString
	ContentHash string
	UploadDate  sql.NullString
}
