package models_test

import (
	"testing"

	"eats/internal/models"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []models.Status{
	models.StatusPending,
	models.StatusCooking,
	models.StatusCooked,
	models.StatusPickedUp,
	models.StatusDelivered,
}

func TestCanTransition_Table(t *testing.T) {
	allowed := map[models.Role]map[[2]models.Status]bool{
		models.RoleOwner: {
			{models.StatusPending, models.StatusCooking}: true,
			{models.StatusPending, models.StatusCooked}:  true,
			{models.StatusCooking, models.StatusCooked}:  true,
		},
		models.RoleDriver: {
			{models.StatusCooked, models.StatusPickedUp}:    true,
			{models.StatusPickedUp, models.StatusDelivered}: true,
		},
	}

	roles := []models.Role{models.RoleOwner, models.RoleDriver, models.RoleCustomer, models.RoleAny}
	for _, role := range roles {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				want := allowed[role][[2]models.Status{from, to}]
				assert.Equal(t, want, models.CanTransition(role, from, to), "%s: %s -> %s", role, from, to)
			}
		}
	}
}

func TestCanTransition_NeverBackwards(t *testing.T) {
	for _, role := range []models.Role{models.RoleOwner, models.RoleDriver} {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				if models.CanTransition(role, from, to) {
					assert.True(t, from.Before(to), "%s: %s -> %s must move forward", role, from, to)
				}
			}
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, models.StatusCooked.Valid())
	assert.False(t, models.Status("Cancelled").Valid())
	assert.False(t, models.Status("").Before(models.StatusPending))
}

func TestOrder_IsParty(t *testing.T) {
	driver := "driver-1"
	order := &models.Order{
		CustomerID: "customer-1",
		DriverID:   &driver,
		Restaurant: &models.Restaurant{OwnerID: "owner-1"},
	}

	assert.True(t, order.IsParty("customer-1"))
	assert.True(t, order.IsParty("owner-1"))
	assert.True(t, order.IsParty("driver-1"))
	assert.False(t, order.IsParty("someone-else"))
	assert.False(t, order.IsParty(""))
}
