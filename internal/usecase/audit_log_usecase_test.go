package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

func TestAuditLogUsecase_List(t *testing.T) {
	logs := new(AuditRepoMock)
	u := NewAuditLogUsecase(logs)

	want := []model.AuditLog{{ID: "log-1", Action: model.AuditActionUpdateOrderStatus, ResourceID: "o1"}}
	logs.On("List", mock.Anything, repo.AuditLogFilter{
		ActorUserID:  "admin-1",
		ResourceType: model.AuditResourceOrder,
		ResourceID:   "o1",
	}).Return(want, nil)

	got, err := u.List(context.Background(), admin, AuditLogQuery{
		ActorUserID:  "admin-1",
		ResourceType: "order",
		ResourceID:   "o1",
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAuditLogUsecase_List_Errors(t *testing.T) {
	logs := new(AuditRepoMock)
	u := NewAuditLogUsecase(logs)
	ctx := context.Background()

	_, err := u.List(ctx, client, AuditLogQuery{})
	assertHTTPError(t, err, http.StatusForbidden, "Admin access required")

	_, err = u.List(ctx, admin, AuditLogQuery{ResourceType: "user", Limit: 500})
	assert.ElementsMatch(t, []string{"resourceType", "limit"}, fieldsOf(err))

	_, err = u.List(ctx, admin, AuditLogQuery{Limit: -1})
	assert.Equal(t, []string{"limit"}, fieldsOf(err))

	logs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	logs.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	_, err = u.List(ctx, admin, AuditLogQuery{})
	assertHTTPError(t, err, http.StatusInternalServerError, "Server Error")
}
