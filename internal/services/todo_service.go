package services

import (
	"fmt"
	"strings"

	"github.com/logsage/backend/internal/models"
	"gorm.io/gorm"
)

// TodoStore is the persistence boundary for the todo demo feature, backed by
// the same transactional store as everything else rather than a process-local
// list.
type TodoStore interface {
	List(userID uint) ([]models.Todo, error)
	Add(userID uint, text string) (*models.Todo, error)
	Remove(userID, todoID uint) error
}

type gormTodoStore struct {
	db *gorm.DB
}

func NewTodoStore(db *gorm.DB) TodoStore {
	return &gormTodoStore{db: db}
}

func (s *gormTodoStore) List(userID uint) ([]models.Todo, error) {
	var todos []models.Todo
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (s *gormTodoStore) Add(userID uint, text string) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Message: "todo text must not be empty"}
	}
	todo := models.Todo{UserID: userID, Text: text}
	if err := s.db.Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

func (s *gormTodoStore) Remove(userID, todoID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", todoID, userID).Delete(&models.Todo{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
