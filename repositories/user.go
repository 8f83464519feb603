//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"qa-board/errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(username, email, hashedPassword string) (string, error)
	GetUserByEmail(email string) (User, error)
	GetUserByID(id string) (User, error)
}

// UserRepository keeps one record per user plus two lookup keys:
//
//	user:email:{email} -> record
//	user:name:{username} -> email
//	user:id:{id} -> email
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

func emailKey(email string) []byte { return []byte("user:email:" + email) }

// Usernames are unique regardless of case.
func nameKey(username string) []byte { return []byte("user:name:" + strings.ToLower(username)) }

func idKey(id string) []byte { return []byte("user:id:" + id) }

// CreateUser persists a user and returns its generated id.
// Email and username must both be free.
func (u *UserRepository) CreateUser(username, email, hashedPassword string) (string, error) {
	user := User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Roles:        []string{"user"},
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal failed: %w", err)
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{emailKey(email), nameKey(username)} {
			_, err := txn.Get(key)
			if err == nil {
				return errors.ErrUserAlreadyExists
			}
			if !goerrors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		if err := txn.Set(emailKey(email), data); err != nil {
			return err
		}
		if err := txn.Set(nameKey(username), []byte(email)); err != nil {
			return err
		}
		return txn.Set(idKey(user.ID), []byte(email))
	})
	if goerrors.Is(err, badger.ErrConflict) {
		// a concurrent registration committed the same keys first
		return "", errors.ErrUserAlreadyExists
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (u *UserRepository) GetUserByEmail(email string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, email)
		return err
	})
	return user, err
}

func (u *UserRepository) GetUserByID(id string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		email, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		user, err = getUser(txn, string(email))
		return err
	})
	return user, err
}

func getUser(txn *badger.Txn, email string) (User, error) {
	item, err := txn.Get(emailKey(email))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	var user User
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &user)
	})
	return user, err
}
