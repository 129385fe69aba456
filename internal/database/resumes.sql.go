package database

import (
	"context"
	"database/sql"
)

const listResumes = `-- name: ListResumes :many
SELECT id, name, file_path, text, content_hash, upload_date FROM resumes ORDER BY id
`

func (q *Queries) ListResumes(ctx context.Context) ([]Resume, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(listResumes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resume
	for rows.Next() {
		var i Resume
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.FilePath,
			&i.Text,
			&i.ContentHash,
			&i.UploadDate,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getResumeByName = `-- name: GetResumeByName :one
SELECT id, name, file_path, text, content_hash, upload_date FROM resumes WHERE name = ?
`

func (q *Queries) GetResumeByName(ctx context.Context, name string) (Resume, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(getResumeByName), name)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.FilePath,
		&i.Text,
		&i.ContentHash,
		&i.UploadDate,
	)
	return i, err
}

const upsertResume = `-- name: UpsertResume :exec
INSERT INTO resumes (name, file_path, text, content_hash, upload_date)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (name)
DO UPDATE SET
    file_path = EXCLUDED.file_path,
    text = EXCLUDED.text,
    content_hash = EXCLUDED.content_hash,
    upload_date = EXCLUDED.upload_date
`

type UpsertResumeParams struct {
	Name        string
	FilePath    string
	Text        sql.NullString
	ContentHash string
	UploadDate  string
}

func (q *Queries) UpsertResume(ctx context.Context, arg UpsertResumeParams) error {
	_, err := q.db.ExecContext(ctx, q.rebind(upsertResume),
		arg.Name,
		arg.FilePath,
		arg.Text,
		arg.ContentHash,
		arg.UploadDate,
	)
	return err
}

const deleteResumeByName = `-- name: DeleteResumeByName :execrows
DELETE FROM resumes WHERE name = ?
`

func (q *Queries) DeleteResumeByName(ctx context.Context, name string) (int64, error) {
	result, err := q.db.ExecContext(ctx, q.rebind(deleteResumeByName), name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
