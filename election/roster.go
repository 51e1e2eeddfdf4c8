// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"

	"github.com/camilosanz/urna/models"
)

// Students lists the roster without tokens, for the admin view.
func (e *Election) Students() ([]models.Student, error) {
	rows, err := e.db.Query(`
		SELECT id, doc_id, full_name, grade, group_name, username, completed_at, created_at
		FROM student
		ORDER BY full_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		var completedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.DocID, &s.FullName, &s.Grade, &s.GroupName,
			&s.Username, &completedAt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			s.CompletedAt = &t
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// Credentials exports every issued credential, including the voting
// token, for the QR/certificate renderer. This is the only read path
// that exposes tokens.
func (e *Election) Credentials() ([]models.IssuedCredential, error) {
	rows, err := e.db.Query(`
		SELECT doc_id, full_name, grade, group_name, username, token
		FROM student
		ORDER BY full_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	credentials := []models.IssuedCredential{}
	for rows.Next() {
		var c models.IssuedCredential
		if err := rows.Scan(&c.DocID, &c.FullName, &c.Grade, &c.GroupName, &c.Username, &c.Token); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		credentials = append(credentials, c)
	}

	return credentials, rows.Err()
}

// RemoveStudent deletes a student who has not yet voted. Removal is
// refused once any ballot references the student, so the ledger always
// reconciles against the roster it was cast under.
func (e *Election) RemoveStudent(studentID string) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var ballots int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM ballot_entry WHERE student_id = $1
	`, studentID).Scan(&ballots)
	if err != nil {
		return fmt.Errorf("failed to count ballots: %w", err)
	}
	if ballots > 0 {
		return ErrStudentHasBallots
	}

	result, err := tx.Exec(`DELETE FROM student WHERE id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrStudentNotFound
	}

	return tx.Commit()
}
