package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

const sweetColumns = "id, name, category, price, quantity, description, image_url, created_at, updated_at"

// MySQLSweetStore implements SweetStore on the shop database.
type MySQLSweetStore struct {
	DB *sql.DB
}

func scanSweet(row interface{ Scan(...any) error }) (SweetModel, error) {
	var s SweetModel
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.Description, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (st *MySQLSweetStore) Create(draft SweetDraft) (SweetModel, error) {
	quantity := 0
	if draft.Quantity != nil {
		quantity = *draft.Quantity
	}
	now := time.Now()
	res, err := st.DB.Exec(`INSERT INTO sweets (name, category, price, quantity, description, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		draft.Name, draft.Category, *draft.Price, quantity, draft.Description, draft.ImageURL, now, now)
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to insert sweet: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to read inserted sweet id: %w", err)
	}
	return st.GetByID(int(id))
}

func (st *MySQLSweetStore) GetByID(id int) (SweetModel, error) {
	sweet, err := scanSweet(st.DB.QueryRow(`SELECT `+sweetColumns+` FROM sweets WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return SweetModel{}, ErrSweetNotFound
	}
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to fetch sweet %d: %w", id, err)
	}
	return sweet, nil
}

func (st *MySQLSweetStore) List() ([]SweetModel, error) {
	rows, err := st.DB.Query(`SELECT ` + sweetColumns + ` FROM sweets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweets: %w", err)
	}
	defer rows.Close()

	sweets := []SweetModel{}
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet row: %w", err)
		}
		sweets = append(sweets, sweet)
	}
	return sweets, rows.Err()
}

// buildSweetSearchQuery assembles the WHERE clause from the supplied filters
// only; absent filters impose no constraint and price bounds are inclusive.
func buildSweetSearchQuery(filter SweetFilter) (string, []any) {
	query := `SELECT ` + sweetColumns + ` FROM sweets`
	conds := []string{}
	args := []any{}

	if filter.Name != "" {
		conds = append(conds, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"
	return query, args
}

func (st *MySQLSweetStore) Search(filter SweetFilter) ([]SweetModel, error) {
	query, args := buildSweetSearchQuery(filter)
	rows, err := st.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}
	defer rows.Close()

	sweets := []SweetModel{}
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet row: %w", err)
		}
		sweets = append(sweets, sweet)
	}
	return sweets, rows.Err()
}

func (st *MySQLSweetStore) Update(id int, patch SweetPatch) (SweetModel, error) {
	sweet, err := st.GetByID(id)
	if err != nil {
		return SweetModel{}, err
	}

	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		sweet.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		sweet.ImageURL = *patch.ImageURL
	}

	_, err = st.DB.Exec(`UPDATE sweets SET name = ?, category = ?, price = ?, quantity = ?, description = ?, image_url = ?, updated_at = NOW() WHERE id = ?`,
		sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, sweet.Description, sweet.ImageURL, id)
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to update sweet %d: %w", id, err)
	}
	return st.GetByID(id)
}

func (st *MySQLSweetStore) Delete(id int) error {
	res, err := st.DB.Exec(`DELETE FROM sweets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrSweetNotFound
	}
	return nil
}

// Purchase runs the read-check-write as one conditional UPDATE so two
// concurrent purchases cannot both pass the sufficiency check against a
// stale quantity. When the guard matches no row, the follow-up read only
// decides which error to report.
func (st *MySQLSweetStore) Purchase(id, n int) (SweetModel, error) {
	res, err := st.DB.Exec(`UPDATE sweets SET quantity = quantity - ?, updated_at = NOW() WHERE id = ? AND quantity >= ?`, n, id, n)
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to purchase sweet %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to read purchase result: %w", err)
	}
	if affected == 0 {
		sweet, err := st.GetByID(id)
		if err != nil {
			return SweetModel{}, err
		}
		return SweetModel{}, InsufficientStockError{Available: sweet.Quantity}
	}
	return st.GetByID(id)
}

func (st *MySQLSweetStore) Restock(id, n int) (SweetModel, error) {
	res, err := st.DB.Exec(`UPDATE sweets SET quantity = quantity + ?, updated_at = NOW() WHERE id = ?`, n, id)
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to restock sweet %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return SweetModel{}, fmt.Errorf("failed to read restock result: %w", err)
	}
	if affected == 0 {
		return SweetModel{}, ErrSweetNotFound
	}
	return st.GetByID(id)
}

// MySQLUserStore implements UserStore on the shop database.
type MySQLUserStore struct {
	DB *sql.DB
}

// mapDuplicateUserErr translates a MySQL duplicate-key failure on the users
// table into the matching sentinel, or nil when err is something else. The
// pre-checks in Create catch nearly every duplicate; this is the backstop
// for two registrations racing past them, where the loser hits the UNIQUE
// constraint instead.
func mapDuplicateUserErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return nil
	}
	if strings.Contains(mysqlErr.Message, "username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}

func (st *MySQLUserStore) Create(username, email, passwordHash, role string) (User, error) {
	if _, found, err := st.FindByEmail(email); err != nil {
		return User{}, err
	} else if found {
		return User{}, ErrEmailTaken
	}
	var existing int
	err := st.DB.QueryRow(`SELECT id FROM users WHERE username = ?`, username).Scan(&existing)
	if err == nil {
		return User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("failed to check username: %w", err)
	}

	now := time.Now()
	res, err := st.DB.Exec(`INSERT INTO users (username, email, password, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		username, email, passwordHash, role, now)
	if err != nil {
		if dup := mapDuplicateUserErr(err); dup != nil {
			return User{}, dup
		}
		return User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("failed to read inserted user id: %w", err)
	}
	return User{ID: int(id), Username: username, Email: email, Password: passwordHash, Role: role, CreatedAt: now}, nil
}

func (st *MySQLUserStore) FindByEmail(email string) (User, bool, error) {
	var u User
	err := st.DB.QueryRow(`SELECT id, username, email, password, role, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return u, true, nil
}
