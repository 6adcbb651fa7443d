package store

import (
	"database/sql"

	"github.com/oViqa/Raihan/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (s *Store) GetAdmins() ([]models.Admin, error) {
	rows, err := s.DB.Query(`SELECT id, email, password FROM admins ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Email, &a.Password); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (s *Store) GetAdminByID(id int) (*models.Admin, error) {
	var a models.Admin
	err := s.DB.QueryRow(`SELECT id, email, password FROM admins WHERE id = ?`, id).
		Scan(&a.ID, &a.Email, &a.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAdminByEmail(email string) (*models.Admin, error) {
	var a models.Admin
	err := s.DB.QueryRow(`SELECT id, email, password FROM admins WHERE email = ?`, email).
		Scan(&a.ID, &a.Email, &a.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAdmin stores the credential with a bcrypt hash.
func (s *Store) CreateAdmin(email, password string) (*models.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	res, err := s.DB.Exec(`INSERT INTO admins (email, password) VALUES (?, ?)`, email, string(hash))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetAdminByID(int(id))
}

// UpdateAdmin updates the email and, when password is non-empty,
// replaces the stored hash.
func (s *Store) UpdateAdmin(id int, email, password string) (*models.Admin, error) {
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if _, err := s.DB.Exec(`UPDATE admins SET email = ?, password = ? WHERE id = ?`, email, string(hash), id); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.DB.Exec(`UPDATE admins SET email = ? WHERE id = ?`, email, id); err != nil {
			return nil, err
		}
	}
	return s.GetAdminByID(id)
}

func (s *Store) DeleteAdmin(id int) error {
	_, err := s.DB.Exec(`DELETE FROM admins WHERE id = ?`, id)
	return err
}

// AuthenticateAdmin verifies a claimed credential. It returns the admin
// on an exact email + password match and nil on any mismatch; an error
// means the query itself failed.
func (s *Store) AuthenticateAdmin(email, password string) (*models.Admin, error) {
	admin, err := s.GetAdminByEmail(email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, nil
	}
	return admin, nil
}
