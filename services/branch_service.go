package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"store-api/apperrors"
	"store-api/models"
	"store-api/repository"
)

// CreateBranchRequest is the branch creation payload.
type CreateBranchRequest struct {
	Name        string          `json:"name" binding:"required"`
	Address     string          `json:"address" binding:"required"`
	Location    string          `json:"location"`
	PhoneNumber string          `json:"phoneNumber"`
	Worktime    models.Worktime `json:"worktime" binding:"required"`
}

type BranchService struct {
	branches repository.BranchRepo
}

func NewBranchService(branches repository.BranchRepo) *BranchService {
	return &BranchService{branches: branches}
}

func (s *BranchService) ListBranches(ctx context.Context, page, pageSize int) ([]models.Branch, int64, error) {
	branches, total, err := s.branches.Find(ctx, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return branches, total, nil
}

func (s *BranchService) GetBranch(ctx context.Context, id string) (*models.Branch, error) {
	branchID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid branch ID format")
	}
	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Branch not found")
		}
		return nil, apperrors.Internal(err)
	}
	return branch, nil
}

func (s *BranchService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*models.Branch, error) {
	if req.Worktime.From == "" || req.Worktime.To == "" {
		return nil, apperrors.Validation("Worktime must include from and to")
	}

	branch := &models.Branch{
		Name:        req.Name,
		Address:     req.Address,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Worktime:    req.Worktime,
	}
	if err := s.branches.Create(ctx, branch); err != nil {
		return nil, apperrors.Internal(err)
	}
	return branch, nil
}

func (s *BranchService) UpdateBranch(ctx context.Context, id string, updates bson.M) (*models.Branch, error) {
	branchID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.Validation("Invalid branch ID format")
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("No update fields provided")
	}
	branch, err := s.branches.Update(ctx, branchID, updates)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Branch not found")
		}
		return nil, apperrors.Internal(err)
	}
	return branch, nil
}

func (s *BranchService) DeleteBranch(ctx context.Context, id string) error {
	branchID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid branch ID format")
	}
	if err := s.branches.Delete(ctx, branchID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Branch not found")
		}
		return apperrors.Internal(err)
	}
	return nil
}

// AddStaff assigns a staff member to a branch, enforcing that a user belongs
// to at most one branch at a time.
func (s *BranchService) AddStaff(ctx context.Context, branchID, staffID string) error {
	bID, err := primitive.ObjectIDFromHex(branchID)
	if err != nil {
		return apperrors.Validation("Invalid branch ID format")
	}
	sID, err := primitive.ObjectIDFromHex(staffID)
	if err != nil {
		return apperrors.Validation("Invalid staff ID format")
	}

	branch, err := s.branches.FindByID(ctx, bID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Branch not found")
		}
		return apperrors.Internal(err)
	}

	for _, existing := range branch.Staffs {
		if existing == sID {
			return apperrors.Conflict("The user has already been added to this branch")
		}
	}

	if _, err := s.branches.FindByStaff(ctx, sID, bID); err == nil {
		return apperrors.Conflict("The user is already assigned to another branch")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.Internal(err)
	}

	if err := s.branches.AddStaff(ctx, bID, sID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// RemoveStaff detaches a staff member from a branch.
func (s *BranchService) RemoveStaff(ctx context.Context, branchID, staffID string) error {
	bID, err := primitive.ObjectIDFromHex(branchID)
	if err != nil {
		return apperrors.Validation("Invalid branch ID format")
	}
	sID, err := primitive.ObjectIDFromHex(staffID)
	if err != nil {
		return apperrors.Validation("Invalid staff ID format")
	}

	branch, err := s.branches.FindByID(ctx, bID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("Branch not found")
		}
		return apperrors.Internal(err)
	}

	found := false
	for _, existing := range branch.Staffs {
		if existing == sID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.NotFound("Staff not found")
	}

	if err := s.branches.RemoveStaff(ctx, bID, sID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
