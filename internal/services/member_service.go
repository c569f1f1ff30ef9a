package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"playground_pos_backend/internal/models"
	"playground_pos_backend/internal/repositories"
	"playground_pos_backend/pkg/utils"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberPhoneInUse   = errors.New("phone number already registered to a member")
	ErrMembershipExpired  = errors.New("membership has expired")
	ErrInvalidMemberDates = errors.New("invalid member dates")
)

const membershipValidity = 365 * 24 * time.Hour

// RegisterMemberRequest carries a new membership registration.
type RegisterMemberRequest struct {
	ChildName   string  `json:"child_name" binding:"required"`
	Branch      string  `json:"branch" binding:"required"`
	BirthPlace  *string `json:"birth_place"`
	Gender      *string `json:"gender"`
	DateOfBirth string  `json:"date_of_birth" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Address     *string `json:"address"`
}

// UpdateMemberRequest carries a partial member update. The barcode is fixed
// at registration and never rewritten.
type UpdateMemberRequest struct {
	ChildName  *string `json:"child_name"`
	BirthPlace *string `json:"birth_place"`
	Gender     *string `json:"gender"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

type MemberService interface {
	RegisterMember(req RegisterMemberRequest) (*models.Member, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByBarcode(barcode string) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error)
	UpdateMember(id int64, req UpdateMemberRequest) (*models.Member, error)
	RenewMember(id int64) (*models.Member, error)
	DeleteMember(id int64) error
}

type memberService struct {
	memberRepo repositories.MemberRepository
	db         *sql.DB
	now        func() time.Time
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(memberRepo repositories.MemberRepository, db *sql.DB) MemberService {
	return &memberService{memberRepo: memberRepo, db: db, now: time.Now}
}

// RegisterMember creates a membership valid for one year. The barcode
// sequence number and the member row are committed in one transaction so a
// failed insert never burns a sequence number permanently visible on a card.
func (s *memberService) RegisterMember(req RegisterMemberRequest) (*models.Member, error) {
	if utils.IsEmpty(req.ChildName) {
		return nil, fmt.Errorf("%w: child name is required", ErrValidation)
	}
	if utils.IsEmpty(req.Branch) {
		return nil, fmt.Errorf("%w: branch is required", ErrValidation)
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
		return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := s.memberRepo.NextBarcodeSequence(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate barcode sequence: %w", err)
	}

	now := s.now()
	barcode, err := ComposeBarcode(req.Branch, req.DateOfBirth, sequence, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	member := &models.Member{
		ChildName:    strings.TrimSpace(req.ChildName),
		Barcode:      barcode,
		Branch:       req.Branch,
		BirthPlace:   req.BirthPlace,
		Gender:       req.Gender,
		DateOfBirth:  req.DateOfBirth,
		Phone:        req.Phone,
		Address:      req.Address,
		RegisteredAt: now,
		ExpiresAt:    now.Add(membershipValidity),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.memberRepo.CreateMember(tx, member)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMemberPhoneInUse
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}
	member.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit member registration: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMemberByID(id int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to fetch member %d: %w", id, err)
	}
	return member, nil
}

// GetMemberByBarcode resolves a scanned card. An expired membership is a
// distinct error so the front desk can offer a renewal.
func (s *memberService) GetMemberByBarcode(barcode string) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByBarcode(strings.TrimSpace(barcode))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to fetch member by barcode: %w", err)
	}
	if member.Expired(s.now()) {
		return member, ErrMembershipExpired
	}
	return member, nil
}

func (s *memberService) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	members, total, err := s.memberRepo.GetMembers(page, pageSize, searchTerm)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

func (s *memberService) UpdateMember(id int64, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return nil, err
	}

	if req.ChildName != nil {
		if utils.IsEmpty(*req.ChildName) {
			return nil, fmt.Errorf("%w: child name cannot be empty", ErrValidation)
		}
		member.ChildName = strings.TrimSpace(*req.ChildName)
	}
	if req.Phone != nil {
		if !utils.IsValidPhone(*req.Phone) {
			return nil, fmt.Errorf("%w: invalid phone number", ErrValidation)
		}
		member.Phone = *req.Phone
	}
	if req.BirthPlace != nil {
		member.BirthPlace = req.BirthPlace
	}
	if req.Gender != nil {
		member.Gender = req.Gender
	}
	if req.Address != nil {
		member.Address = req.Address
	}
	member.UpdatedAt = s.now()

	if err := s.memberRepo.UpdateMember(s.db, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrMemberPhoneInUse
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member %d: %w", id, err)
	}
	return member, nil
}

// RenewMember extends the membership one year. An expired membership renews
// from now, an active one from its current expiry.
func (s *memberService) RenewMember(id int64) (*models.Member, error) {
	member, err := s.GetMemberByID(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	base := member.ExpiresAt
	if base.Before(now) {
		base = now
	}
	member.ExpiresAt = base.Add(membershipValidity)
	member.UpdatedAt = now

	if err := s.memberRepo.UpdateMember(s.db, member); err != nil {
		return nil, fmt.Errorf("failed to renew member %d: %w", id, err)
	}
	return member, nil
}

func (s *memberService) DeleteMember(id int64) error {
	if err := s.memberRepo.DeleteMember(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete member %d: %w", id, err)
	}
	return nil
}
