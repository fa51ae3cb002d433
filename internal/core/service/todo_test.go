package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "github.com/romansndlr/remix-todos/pkg/test"

	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite"
	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite/repository"
	"github.com/romansndlr/remix-todos/internal/adapter/http/validation"
	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
	"github.com/romansndlr/remix-todos/internal/core/service"
	"github.com/romansndlr/remix-todos/internal/core/telemetry"
)

var ctx = context.Background()

type TodoServiceTestSuite struct {
	suite.Suite
	DB       *sqlite.DB
	Service  *service.TodoService
	TodoRepo port.TodoRepository
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.DB = InitTestDB()
	s.TodoRepo = repository.NewTodoRepository(s.DB, telemetry.NewNoOpProbe())
	s.Service = service.NewTodoService(s.TodoRepo, validation.NewValidator(), nil, nil)
}

func (s *TodoServiceTestSuite) TearDownTest() {
	s.DB.Close()
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) TestService_List_Empty() {
	todos, err := s.Service.List(ctx)

	Expect(err).To(BeNil())
	Expect(todos).ToNot(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestService_List_WithData() {
	s.TodoRepo.Create(ctx, "Buy milk")
	s.TodoRepo.Create(ctx, "Walk the dog")

	todos, err := s.Service.List(ctx)

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
}

func (s *TodoServiceTestSuite) TestService_Create_Success() {
	todo, err := s.Service.Create(ctx, domain.CreateTodo{Title: "Buy milk"})

	Expect(err).To(BeNil())
	Expect(todo.Title).To(Equal("Buy milk"))
	Expect(todo.Done).To(BeFalse())
	Expect(CountTodos(s.T(), s.DB)).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestService_Create_EmptyTitle() {
	_, err := s.Service.Create(ctx, domain.CreateTodo{Title: ""})

	var validationErr *domain.ValidationError

	Expect(errors.As(err, &validationErr)).To(BeTrue())
	Expect(validationErr.Fields).To(Equal(map[string][]string{"title": {"Title is required"}}))
	Expect(CountTodos(s.T(), s.DB)).To(Equal(0))
}

func (s *TodoServiceTestSuite) TestService_Create_WhitespaceTitle() {
	todo, err := s.Service.Create(ctx, domain.CreateTodo{Title: "   "})

	Expect(err).To(BeNil())
	Expect(todo.Title).To(Equal("   "))
}

func (s *TodoServiceTestSuite) TestService_Toggle_Success() {
	created, _ := s.TodoRepo.Create(ctx, "Buy milk")

	err := s.Service.Toggle(ctx, domain.ToggleTodo{ID: created.ID, Done: true})
	Expect(err).To(BeNil())

	todos, _ := s.Service.List(ctx)
	Expect(todos).To(ConsistOf(domain.Todo{ID: created.ID, Title: "Buy milk", Done: true}))
}

func (s *TodoServiceTestSuite) TestService_Toggle_NotFound() {
	err := s.Service.Toggle(ctx, domain.ToggleTodo{ID: 42, Done: true})

	Expect(errors.Is(err, domain.ErrTodoNotFound)).To(BeTrue())
}

func (s *TodoServiceTestSuite) TestService_Apply_Create() {
	err := s.Service.Apply(ctx, domain.CreateTodo{Title: "Buy milk"})

	Expect(err).To(BeNil())
	Expect(CountTodos(s.T(), s.DB)).To(Equal(1))
}

func (s *TodoServiceTestSuite) TestService_Apply_Toggle() {
	created, _ := s.TodoRepo.Create(ctx, "Buy milk")

	err := s.Service.Apply(ctx, domain.ToggleTodo{ID: created.ID, Done: true})

	Expect(err).To(BeNil())
}

func (s *TodoServiceTestSuite) TestService_Apply_Unknown() {
	err := s.Service.Apply(ctx, nil)

	Expect(errors.Is(err, domain.ErrUnknownMethod)).To(BeTrue())
	Expect(CountTodos(s.T(), s.DB)).To(Equal(0))
}

func (s *TodoServiceTestSuite) TestService_List_ClosedDatabase() {
	s.DB.Close()

	_, err := s.Service.List(ctx)

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "list todos")
}

func TestService_RecordsOperationMetrics(t *testing.T) {
	db := InitTestDB()
	defer db.Close()

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewAppMetrics(registry)
	svc := service.NewTodoService(
		repository.NewTodoRepository(db, nil),
		validation.NewValidator(),
		nil,
		metrics,
	)

	svc.Create(ctx, domain.CreateTodo{Title: "Buy milk"})
	svc.Create(ctx, domain.CreateTodo{Title: ""})
	svc.Toggle(ctx, domain.ToggleTodo{ID: 404, Done: true})

	count, err := testutil.GatherAndCount(registry, "todo_operations_total")

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOutcome(t *testing.T) {
	validationErr := domain.NewValidationError()
	validationErr.Add("title", "Title is required")

	assert.Equal(t, "success", service.Outcome(nil))
	assert.Equal(t, "invalid", service.Outcome(validationErr))
	assert.Equal(t, "not_found", service.Outcome(fmt.Errorf("toggle todo 1: %w", domain.ErrTodoNotFound)))
	assert.Equal(t, "error", service.Outcome(errors.New("boom")))
}
