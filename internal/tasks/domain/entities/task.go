// Package entities defines the domain entities for the tasks service.
package entities

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

// Status представляет состояние задачи.
type Status string

// Допустимые состояния задачи. Переходы между любыми состояниями разрешены.
const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ErrInvalidStatus возвращается для значения вне набора состояний.
var ErrInvalidStatus = errors.New("invalid status")

// Statuses возвращает все допустимые состояния.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusDone}
}

// Valid сообщает, входит ли состояние в допустимый набор.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus нормализует внешнее значение состояния: обрезает пробелы, не учитывает регистр.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%s is %w", status, ErrInvalidStatus)
	}
	return status, nil
}

// Task представляет собой задачу пользователя.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask создает задачу в состоянии OPEN.
func NewTask(ownerID, title, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusOpen,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskFilter задает необязательные условия выборки, объединяемые по И.
// Пустой Search означает отсутствие условия поиска.
type TaskFilter struct {
	Status *Status
	Search string
}

// Matches сообщает, удовлетворяет ли задача фильтру.
// Хранилища обязаны отбирать ровно те задачи, для которых Matches истинно (для ASCII-текста).
func (f TaskFilter) Matches(task *Task, caseInsensitive bool) bool {
	if f.Status != nil && task.Status != *f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	title, description, search := task.Title, task.Description, f.Search
	if caseInsensitive {
		title, description, search = strings.ToLower(title), strings.ToLower(description), strings.ToLower(search)
	}
	return strings.Contains(title, search) || strings.Contains(description, search)
}

// CollectTasks вычитывает последовательность задач до конца или до первой ошибки.
func CollectTasks(seq iter.Seq2[*Task, error]) ([]*Task, error) {
	tasks := make([]*Task, 0)
	for task, err := range seq {
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
