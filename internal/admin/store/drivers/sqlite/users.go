package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/opsgarden/admind/internal/admin/domain"
)

type usersRepo struct {
	q querier
}

const userWithRoleColumns = `
	u.id, u.username, u.password_digest, u.email, u.fullname, u.avatar,
	u.role_id, u.created_at, u.updated_at, u.deleted_at,
	r.id, r.name, r.description,
	r.user_view, r.user_create, r.user_update, r.user_delete,
	r.master_data_view, r.master_data_create, r.master_data_update, r.master_data_delete,
	r.editable, r.archived, r.created_at, r.updated_at`

const userWithRoleFrom = ` FROM users u JOIN roles r ON r.id = u.role_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserWithRole(row rowScanner) (domain.UserWithRole, error) {
	var (
		u         domain.UserWithRole
		deletedAt sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordDigest, &u.Email, &u.Fullname, &u.Avatar,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
		&u.Role.ID, &u.Role.Name, &u.Role.Description,
		&u.Role.User.View, &u.Role.User.Create, &u.Role.User.Update, &u.Role.User.Delete,
		&u.Role.MasterData.View, &u.Role.MasterData.Create, &u.Role.MasterData.Update, &u.Role.MasterData.Delete,
		&u.Role.Editable, &u.Role.Archived, &u.Role.CreatedAt, &u.Role.UpdatedAt,
	)
	if err != nil {
		return domain.UserWithRole{}, err
	}
	u.DeletedAt = mapNullTimePtr(deletedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserWithRole, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT`+userWithRoleColumns+userWithRoleFrom+
			` WHERE u.id = ? AND u.deleted_at IS NULL`, id)

	u, err := scanUserWithRole(row)
	if err != nil {
		return domain.UserWithRole{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.UserWithRole, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT`+userWithRoleColumns+userWithRoleFrom+
			` WHERE u.username = ? AND u.deleted_at IS NULL`, username)

	u, err := scanUserWithRole(row)
	if err != nil {
		return domain.UserWithRole{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, password_digest, email, fullname, avatar, role_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordDigest, u.Email, u.Fullname, u.Avatar, u.RoleID, now, now)
	return mapConflict(err)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.UserWithRole, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT`+userWithRoleColumns+userWithRoleFrom+
			` WHERE u.deleted_at IS NULL ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.UserWithRole
	for rows.Next() {
		u, err := scanUserWithRole(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) SearchUsers(
	ctx context.Context,
	query string,
	p domain.Pagination,
) (int, []domain.UserWithRole, error) {
	pattern := "%" + query + "%"
	where := ` WHERE u.deleted_at IS NULL
		AND (u.username LIKE ? COLLATE NOCASE OR u.fullname LIKE ? COLLATE NOCASE)`

	var total int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*)`+userWithRoleFrom+where, pattern, pattern).Scan(&total)
	if err != nil {
		return 0, nil, err
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT`+userWithRoleColumns+userWithRoleFrom+where+
			` ORDER BY `+userSortColumn(p.Sort)+` LIMIT ? OFFSET ?`,
		pattern, pattern, p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var users []domain.UserWithRole
	for rows.Next() {
		u, err := scanUserWithRole(rows)
		if err != nil {
			return 0, nil, err
		}
		users = append(users, u)
	}
	return total, users, rows.Err()
}

// userSortColumn whitelists sortable columns; anything unknown falls back to
// creation time. Never interpolate caller input here.
func userSortColumn(s domain.Sort) string {
	var col string
	switch s.By {
	case domain.SortByUsername:
		col = "u.username"
	case domain.SortByFullname:
		col = "u.fullname"
	case domain.SortByRole:
		col = "r.name"
	default:
		col = "u.created_at"
	}
	if s.Order == domain.SortAsc {
		return col + " ASC"
	}
	return col + " DESC"
}

func (r *usersRepo) UpdateUserRole(ctx context.Context, userID, roleID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET role_id = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		roleID, time.Now().UTC(), userID)
	return requireRowAffected(res, err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, email, fullname string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET email = ?, fullname = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		email, fullname, time.Now().UTC(), userID)
	return requireRowAffected(res, mapConflict(err))
}

func (r *usersRepo) ChangeUsername(ctx context.Context, userID, username string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET username = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		username, time.Now().UTC(), userID)
	return requireRowAffected(res, mapConflict(err))
}

func (r *usersRepo) SoftDeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC(), userID)
	return requireRowAffected(res, err)
}

func (r *usersRepo) IsUsernameAvailable(ctx context.Context, username, excludeID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? AND deleted_at IS NULL AND id != ?`,
		username, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) IsEmailAvailable(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND deleted_at IS NULL AND id != ?`,
		email, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
