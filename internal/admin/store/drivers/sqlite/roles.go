package sqlite

import (
	"context"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
)

type rolesRepo struct {
	q querier
}

const roleColumns = `
	id, name, description,
	user_view, user_create, user_update, user_delete,
	master_data_view, master_data_create, master_data_update, master_data_delete,
	editable, archived, created_at, updated_at`

func scanRole(row rowScanner) (domain.Role, error) {
	var r domain.Role
	err := row.Scan(
		&r.ID, &r.Name, &r.Description,
		&r.User.View, &r.User.Create, &r.User.Update, &r.User.Delete,
		&r.MasterData.View, &r.MasterData.Create, &r.MasterData.Update, &r.MasterData.Delete,
		&r.Editable, &r.Archived, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id string) (domain.Role, error) {
	role, err := scanRole(r.q.QueryRowContext(ctx,
		`SELECT`+roleColumns+` FROM roles WHERE id = ?`, id))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	role, err := scanRole(r.q.QueryRowContext(ctx,
		`SELECT`+roleColumns+` FROM roles WHERE name = ? AND archived = 0`, name))
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT`+roleColumns+` FROM roles WHERE archived = 0 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) SearchRoles(
	ctx context.Context,
	query string,
	p domain.Pagination,
) (int, []domain.Role, error) {
	pattern := "%" + query + "%"
	where := ` WHERE archived = 0 AND name LIKE ? COLLATE NOCASE`

	var total int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`+where, pattern).Scan(&total)
	if err != nil {
		return 0, nil, err
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT`+roleColumns+` FROM roles`+where+
			` ORDER BY `+roleSortColumn(p.Sort)+` LIMIT ? OFFSET ?`,
		pattern, p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return 0, nil, err
		}
		roles = append(roles, role)
	}
	return total, roles, rows.Err()
}

func roleSortColumn(s domain.Sort) string {
	col := "created_at"
	if s.By == domain.SortByName {
		col = "name"
	}
	if s.Order == domain.SortAsc {
		return col + " ASC"
	}
	return col + " DESC"
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO roles (
			id, name, description,
			user_view, user_create, user_update, user_delete,
			master_data_view, master_data_create, master_data_update, master_data_delete,
			editable, archived, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		role.ID, role.Name, role.Description,
		role.User.View, role.User.Create, role.User.Update, role.User.Delete,
		role.MasterData.View, role.MasterData.Create, role.MasterData.Update, role.MasterData.Delete,
		role.Editable, role.Archived, now, now)
	return mapConflict(err)
}

func (r *rolesRepo) UpdateRole(ctx context.Context, role domain.Role) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE roles SET
			name = ?, description = ?,
			user_view = ?, user_create = ?, user_update = ?, user_delete = ?,
			master_data_view = ?, master_data_create = ?, master_data_update = ?, master_data_delete = ?,
			updated_at = ?
		 WHERE id = ?`,
		role.Name, role.Description,
		role.User.View, role.User.Create, role.User.Update, role.User.Delete,
		role.MasterData.View, role.MasterData.Create, role.MasterData.Update, role.MasterData.Delete,
		time.Now().UTC(), role.ID)
	return requireRowAffected(res, mapConflict(err))
}

func (r *rolesRepo) ArchiveRole(ctx context.Context, roleID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE roles SET archived = 1, updated_at = ? WHERE id = ? AND archived = 0`,
		time.Now().UTC(), roleID)
	return requireRowAffected(res, err)
}
