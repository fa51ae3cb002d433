package domain

type Todo struct {
	ID    int    `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
	Done  bool   `json:"done" db:"done"`
}

func (t *Todo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":    t.ID,
		"title": t.Title,
		"done":  t.Done,
	}
}

// Toggled returns a copy with done set to the given value.
func (t Todo) Toggled(done bool) Todo {
	t.Done = done
	return t
}
