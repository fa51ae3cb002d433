package port

// Validator checks a struct against its `validate` tags and returns a
// *domain.ValidationError when any constraint fails.
type Validator interface {
	Validate(s interface{}) error
}
