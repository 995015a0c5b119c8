package services_test

import (
	"testing"

	"pos-service/models"
	"pos-service/services"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_Matrix(t *testing.T) {
	allowed := map[services.Operation][]models.Actor{
		services.OpCreateTable:       {manager},
		services.OpListTables:        {admin, manager, waiter, cashier},
		services.OpListMenuItems:     {admin, manager, waiter, cashier},
		services.OpCreateMenuItem:    {manager},
		services.OpCreateOrder:       {waiter},
		services.OpUpdateOrderStatus: {waiter},
		services.OpListTableOrders:   {admin, manager, waiter, cashier},
		services.OpGenerateBill:      {cashier},
		services.OpMarkBillPaid:      {cashier},
		services.OpListPendingBills:  {cashier},
		services.OpDeleteUser:        {admin},
	}
	everyone := []models.Actor{admin, manager, waiter, cashier}

	for op, actors := range allowed {
		for _, actor := range everyone {
			want := false
			for _, a := range actors {
				if a.Role == actor.Role {
					want = true
				}
			}
			svcErr := services.Authorize(actor, op)
			if want {
				assert.Nil(t, svcErr, "%s should allow %s", op, actor.Role)
			} else if assert.NotNil(t, svcErr, "%s should deny %s", op, actor.Role) {
				assert.Equal(t, services.KindPermissionDenied, svcErr.Kind)
				assert.Equal(t, 403, svcErr.StatusCode)
			}
		}
	}
}

func TestAuthorize_UnknownOperationDenied(t *testing.T) {
	svcErr := services.Authorize(admin, services.Operation("dropDatabase"))
	if assert.NotNil(t, svcErr) {
		assert.Equal(t, services.KindPermissionDenied, svcErr.Kind)
	}
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	svcErr := services.Authorize(models.Actor{UserID: 9, Role: models.Role(0)}, services.OpListTables)
	assert.NotNil(t, svcErr)
}
