package models

import "time"

// Todo — задача пользователя. Владелец (UserUID) задается при создании и не меняется.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserUID   string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoPatch — частичное обновление задачи. nil или пустое после обрезки пробелов
// поле оставляет текущее значение без изменений.
type TodoPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
