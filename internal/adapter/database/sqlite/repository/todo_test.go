package repository_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "github.com/romansndlr/remix-todos/pkg/test"

	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite"
	"github.com/romansndlr/remix-todos/internal/adapter/database/sqlite/repository"
	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
	"github.com/romansndlr/remix-todos/internal/core/telemetry"
)

var ctx = context.Background()

type TodoRepositoryTestSuite struct {
	suite.Suite
	DB       *sqlite.DB
	TodoRepo port.TodoRepository
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	s.DB = InitTestDB()
	s.TodoRepo = repository.NewTodoRepository(s.DB, telemetry.NewNoOpProbe())
}

func (s *TodoRepositoryTestSuite) TearDownTest() {
	if s.DB != nil {
		s.DB.Close()
	}
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoRepositoryTestSuite))
}

func (s *TodoRepositoryTestSuite) TestRepository_ListAll_Empty() {
	todos, err := s.TodoRepo.ListAll(ctx)

	Expect(err).To(BeNil())
	Expect(todos).ToNot(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_Success() {
	todo, err := s.TodoRepo.Create(ctx, "Buy milk")

	Expect(err).To(BeNil())
	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Title).To(Equal("Buy milk"))
	Expect(todo.Done).To(BeFalse())
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_AssignsDistinctIDs() {
	first, _ := s.TodoRepo.Create(ctx, "First")
	second, _ := s.TodoRepo.Create(ctx, "Second")

	assert.NotEqual(s.T(), first.ID, second.ID)
}

func (s *TodoRepositoryTestSuite) TestRepository_Create_RejectsEmptyTitle() {
	_, err := s.TodoRepo.Create(ctx, "")

	Expect(err).ToNot(BeNil())
	Expect(CountTodos(s.T(), s.DB)).To(Equal(0))
}

func (s *TodoRepositoryTestSuite) TestRepository_ListAll_WithData() {
	created, _ := s.TodoRepo.Create(ctx, "Buy milk")
	s.TodoRepo.Create(ctx, "Walk the dog")

	todos, err := s.TodoRepo.ListAll(ctx)

	Expect(err).To(BeNil())
	Expect(todos).To(HaveLen(2))
	Expect(todos).To(ContainElement(domain.Todo{ID: created.ID, Title: "Buy milk", Done: false}))
}

func (s *TodoRepositoryTestSuite) TestRepository_SetDone_Success() {
	created, _ := s.TodoRepo.Create(ctx, "Buy milk")

	err := s.TodoRepo.SetDone(ctx, created.ID, true)
	Expect(err).To(BeNil())

	todos, _ := s.TodoRepo.ListAll(ctx)
	Expect(todos).To(ConsistOf(domain.Todo{ID: created.ID, Title: "Buy milk", Done: true}))

	err = s.TodoRepo.SetDone(ctx, created.ID, false)
	Expect(err).To(BeNil())

	todos, _ = s.TodoRepo.ListAll(ctx)
	Expect(todos[0].Done).To(BeFalse())
}

func (s *TodoRepositoryTestSuite) TestRepository_SetDone_SameValue() {
	created, _ := s.TodoRepo.Create(ctx, "Buy milk")

	Expect(s.TodoRepo.SetDone(ctx, created.ID, false)).To(Succeed())
}

func (s *TodoRepositoryTestSuite) TestRepository_SetDone_NotFound() {
	err := s.TodoRepo.SetDone(ctx, 9999, true)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
	Expect(CountTodos(s.T(), s.DB)).To(Equal(0))
}

func (s *TodoRepositoryTestSuite) TestRepository_ClosedDatabase() {
	s.DB.Close()

	_, err := s.TodoRepo.ListAll(ctx)
	assert.Error(s.T(), err)

	_, err = s.TodoRepo.Create(ctx, "Buy milk")
	assert.Error(s.T(), err)

	s.DB = nil
}
