package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"playground_pos_backend/internal/models"

	"github.com/lib/pq"
)

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	CreateMember(executor SQLExecutor, member *models.Member) (int64, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByPhone(phone string) (*models.Member, error)
	GetMemberByBarcode(barcode string) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error)
	UpdateMember(executor SQLExecutor, member *models.Member) error
	DeleteMember(executor SQLExecutor, id int64) error
	CountMembers() (int, error)
	NextBarcodeSequence(executor SQLExecutor) (int, error)
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, child_name, barcode, branch, birth_place, gender,
	to_char(date_of_birth, 'YYYY-MM-DD'), phone, address, registered_at, expires_at, created_at, updated_at`

func scanMember(s scanner) (*models.Member, error) {
	m := &models.Member{}
	var birthPlace, gender, address sql.NullString
	err := s.Scan(
		&m.ID, &m.ChildName, &m.Barcode, &m.Branch, &birthPlace, &gender,
		&m.DateOfBirth, &m.Phone, &address, &m.RegisteredAt, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birthPlace.Valid {
		m.BirthPlace = &birthPlace.String
	}
	if gender.Valid {
		m.Gender = &gender.String
	}
	if address.Valid {
		m.Address = &address.String
	}
	return m, nil
}

// CreateMember inserts a new member into the database.
func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) (int64, error) {
	query := `INSERT INTO members (child_name, barcode, branch, birth_place, gender, date_of_birth, phone, address, registered_at, expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`

	currentTime := time.Now()
	if member.RegisteredAt.IsZero() {
		member.RegisteredAt = currentTime
	}
	member.CreatedAt = currentTime
	member.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		member.ChildName, member.Barcode, member.Branch, member.BirthPlace, member.Gender,
		member.DateOfBirth, member.Phone, member.Address, member.RegisteredAt, member.ExpiresAt,
		member.CreatedAt, member.UpdatedAt,
	).Scan(&member.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating member: %v", ErrDatabaseError, err)
	}
	return member.ID, nil
}

// GetMemberByID retrieves a member by primary key.
func (r *memberRepository) GetMemberByID(id int64) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	member, err := scanMember(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return member, nil
}

// GetMemberByPhone retrieves a member by phone number.
func (r *memberRepository) GetMemberByPhone(phone string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE phone = $1`
	member, err := scanMember(r.db.QueryRow(query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by phone %s: %v", ErrDatabaseError, phone, err)
	}
	return member, nil
}

// GetMemberByBarcode retrieves a member by card barcode.
func (r *memberRepository) GetMemberByBarcode(barcode string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE barcode = $1`
	member, err := scanMember(r.db.QueryRow(query, barcode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by barcode %s: %v", ErrDatabaseError, barcode, err)
	}
	return member, nil
}

// GetMembers retrieves a list of members with pagination and optional search.
func (r *memberRepository) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	members := []models.Member{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + memberColumns + `, COUNT(*) OVER() as total_count FROM members`)

	var args []interface{}
	argCount := 1

	if searchTerm != nil && *searchTerm != "" {
		searchPattern := "%" + strings.ToLower(*searchTerm) + "%"
		queryBuilder.WriteString(fmt.Sprintf(" WHERE (LOWER(child_name) ILIKE $%d OR LOWER(barcode) ILIKE $%d OR phone ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, searchPattern)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY registered_at DESC")

	if pageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, pageSize)
		argCount++
		if page > 0 {
			offset := (page - 1) * pageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		m := models.Member{}
		var birthPlace, gender, address sql.NullString
		if err := rows.Scan(
			&m.ID, &m.ChildName, &m.Barcode, &m.Branch, &birthPlace, &gender,
			&m.DateOfBirth, &m.Phone, &address, &m.RegisteredAt, &m.ExpiresAt, &m.CreatedAt, &m.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		if birthPlace.Valid {
			m.BirthPlace = &birthPlace.String
		}
		if gender.Valid {
			m.Gender = &gender.String
		}
		if address.Valid {
			m.Address = &address.String
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}

	return members, totalCount, nil
}

// UpdateMember updates an existing member in the database.
func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members SET
	            child_name = $1, branch = $2, birth_place = $3, gender = $4,
	            date_of_birth = $5, phone = $6, address = $7, expires_at = $8, updated_at = $9
	          WHERE id = $10`

	member.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		member.ChildName, member.Branch, member.BirthPlace, member.Gender,
		member.DateOfBirth, member.Phone, member.Address, member.ExpiresAt, member.UpdatedAt, member.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMember removes a member from the database.
func (r *memberRepository) DeleteMember(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountMembers returns the number of registered members.
func (r *memberRepository) CountMembers() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting members: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// NextBarcodeSequence atomically advances the persisted barcode counter and
// returns the issued number. The counter is independent of the member count,
// so numbers are never reissued after deletions.
func (r *memberRepository) NextBarcodeSequence(executor SQLExecutor) (int, error) {
	query := `INSERT INTO member_sequence (id, next_number) VALUES (1, 2)
	          ON CONFLICT (id) DO UPDATE SET next_number = member_sequence.next_number + 1
	          RETURNING next_number - 1`
	var seq int
	if err := executor.QueryRow(query).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: advancing member barcode sequence: %v", ErrDatabaseError, err)
	}
	return seq, nil
}
