package repository

import (
	"fmt"

	"github.com/cradoe/crm/internal/models"
)

// Most records carry created_by_id / assigned_to_id. Listing queries join the
// users table twice and scan the names into userRefs so a page of records is
// loaded with its people in one round trip.

const userRefColumns = `
		cu.name AS created_by_name, cu.email AS created_by_email,
		au.name AS assigned_to_name, au.email AS assigned_to_email`

func userRefJoins(alias string) string {
	return fmt.Sprintf(`
		LEFT JOIN users cu ON cu.id = %[1]s.created_by_id
		LEFT JOIN users au ON au.id = %[1]s.assigned_to_id`, alias)
}

type userRefs struct {
	CreatedByName   *string `db:"created_by_name"`
	CreatedByEmail  *string `db:"created_by_email"`
	AssignedToName  *string `db:"assigned_to_name"`
	AssignedToEmail *string `db:"assigned_to_email"`
}

func (r userRefs) createdBy(id *int64) *models.UserSummary {
	return userSummary(id, r.CreatedByName, r.CreatedByEmail)
}

func (r userRefs) assignedTo(id *int64) *models.UserSummary {
	return userSummary(id, r.AssignedToName, r.AssignedToEmail)
}

func userSummary(id *int64, name, email *string) *models.UserSummary {
	if id == nil || name == nil {
		return nil
	}

	summary := &models.UserSummary{ID: *id, Name: *name}
	if email != nil {
		summary.Email = *email
	}
	return summary
}

func accountSummary(id, name *string) *models.AccountSummary {
	if id == nil || name == nil {
		return nil
	}
	return &models.AccountSummary{ID: *id, Name: *name}
}
