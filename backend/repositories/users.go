package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tracker/backend/models"
	"tracker/backend/storage"
)

const userSeq = "seq/users"

type UserRepository struct {
	kv storage.KV
}

func NewUserRepository(kv storage.KV) *UserRepository {
	return &UserRepository{kv: kv}
}

func userKey(id uint) string { return fmt.Sprintf("users/%d", id) }

func emailKey(email string) string {
	return "users_by_email/" + NormalizeEmail(email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) NextID(ctx context.Context) (uint, error) {
	return nextID(ctx, r.kv, userSeq)
}

// Save writes the user and its email index entry.
func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	if err := putJSON(ctx, r.kv, userKey(u.ID), u); err != nil {
		return err
	}
	return r.kv.Put(ctx, emailKey(u.Email), []byte(strconv.FormatUint(uint64(u.ID), 10)))
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := getJSON(ctx, r.kv, userKey(id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	raw, err := r.kv.Get(ctx, emailKey(email))
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("decode email index for %q: %w", email, err)
	}
	return r.FindByID(ctx, uint(id))
}
