package companion

import (
	"context"
	"errors"
	"testing"

	"github.com/ashwinyue/monster-ai/internal/model"
	"github.com/ashwinyue/monster-ai/internal/testutil"
)

// mockRepository 内存伙伴仓库
type mockRepository struct {
	companions map[string]*model.Companion
	createErr  error
}

func newMockRepository() *mockRepository {
	return &mockRepository{companions: make(map[string]*model.Companion)}
}

func (r *mockRepository) Create(companion *model.Companion) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.companions[companion.ID] = companion
	return nil
}

func (r *mockRepository) GetByID(id string) (*model.Companion, error) {
	c, ok := r.companions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *mockRepository) GetByUserID(userID string) (*model.Companion, error) {
	for _, c := range r.companions {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *mockRepository) Update(companion *model.Companion) error {
	if _, ok := r.companions[companion.ID]; !ok {
		return errors.New("record not found")
	}
	r.companions[companion.ID] = companion
	return nil
}

func (r *mockRepository) Delete(id string) error {
	if _, ok := r.companions[id]; !ok {
		return errors.New("record not found")
	}
	delete(r.companions, id)
	return nil
}

func newCreateRequest() *CreateCompanionRequest {
	return &CreateCompanionRequest{
		Name:              "Sparkles",
		SystemPrompt:      "You are Sparkles, a cheerful electric companion.",
		Moves:             []string{"Thunder Bolt", "Static Shock"},
		VisualDescription: "A small glowing creature",
	}
}

func TestCreateCompanion(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())

	companion, err := svc.CreateCompanion(context.Background(), "user-1", newCreateRequest())
	assert.NoError(err)
	assert.True(companion.ID != "", "id assigned")
	assert.Equal("user-1", companion.UserID)
	assert.Equal("Sparkles", companion.Name)
	assert.Equal(2, len(companion.Moves))
}

func TestCreateCompanionOnePerUser(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())
	ctx := context.Background()

	_, err := svc.CreateCompanion(ctx, "user-1", newCreateRequest())
	assert.NoError(err)

	_, err = svc.CreateCompanion(ctx, "user-1", newCreateRequest())
	assert.ErrorContains(err, "already exists")

	// 不同用户不受影响
	_, err = svc.CreateCompanion(ctx, "user-2", newCreateRequest())
	assert.NoError(err)
}

func TestCreateCompanionRequiresMoves(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())

	req := newCreateRequest()
	req.Moves = nil
	_, err := svc.CreateCompanion(context.Background(), "user-1", req)
	assert.ErrorContains(err, "at least one move")
}

func TestCreateCompanionRepositoryError(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	repo := newMockRepository()
	repo.createErr = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.CreateCompanion(context.Background(), "user-1", newCreateRequest())
	assert.ErrorContains(err, "failed to create companion")
}

func TestGetCompanionByUser(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.CreateCompanion(ctx, "user-1", newCreateRequest())
	assert.NoError(err)

	got, err := svc.GetCompanionByUser(ctx, "user-1")
	assert.NoError(err)
	assert.Equal(created.ID, got.ID)

	_, err = svc.GetCompanionByUser(ctx, "user-9")
	assert.Error(err)
}

func TestUpdateCompanionPartialFields(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.CreateCompanion(ctx, "user-1", newCreateRequest())
	assert.NoError(err)

	name := "Bolt"
	updated, err := svc.UpdateCompanion(ctx, created.ID, &UpdateCompanionRequest{Name: &name})
	assert.NoError(err)

	// 只有给出的字段被更新
	assert.Equal("Bolt", updated.Name)
	assert.Equal(created.SystemPrompt, updated.SystemPrompt)
	assert.Equal(2, len(updated.Moves))
}

func TestUpdateCompanionNotFound(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())

	name := "Bolt"
	_, err := svc.UpdateCompanion(context.Background(), "no-such-id", &UpdateCompanionRequest{Name: &name})
	assert.ErrorContains(err, "companion not found")
}

func TestDeleteCompanion(t *testing.T) {
	assert := testutil.NewAssertHelper(t)
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.CreateCompanion(ctx, "user-1", newCreateRequest())
	assert.NoError(err)

	assert.NoError(svc.DeleteCompanion(ctx, created.ID))

	_, err = svc.GetCompanion(ctx, created.ID)
	assert.Error(err)

	assert.ErrorContains(svc.DeleteCompanion(ctx, created.ID), "failed to delete companion")
}
