//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/romansndlr/remix-todos/internal/adapter/database/postgres"
	"github.com/romansndlr/remix-todos/internal/adapter/database/postgres/repository"
	"github.com/romansndlr/remix-todos/internal/core/domain"
	"github.com/romansndlr/remix-todos/internal/core/port"
)

type TodoRepositoryTestSuite struct {
	suite.Suite
	pgContainer testcontainers.Container
	DB          *postgres.DB
	TodoRepo    port.TodoRepository
}

func (s *TodoRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	req := testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "testdb",
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, req)
	s.Require().NoError(err)

	s.pgContainer = pgContainer

	host, err := pgContainer.Host(ctx)
	s.Require().NoError(err)

	mappedPort, err := pgContainer.MappedPort(ctx, "5432")
	s.Require().NoError(err)

	url := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, mappedPort.Port())

	s.DB, err = postgres.NewDB(ctx, url)
	s.Require().NoError(err)

	s.TodoRepo = repository.NewTodoRepository(s.DB, nil)
}

func (s *TodoRepositoryTestSuite) SetupTest() {
	_, err := s.DB.Exec(context.Background(), "TRUNCATE todo RESTART IDENTITY")
	s.Require().NoError(err)
}

func (s *TodoRepositoryTestSuite) TearDownSuite() {
	if s.DB != nil {
		s.DB.Close()
	}

	if s.pgContainer != nil {
		s.pgContainer.Terminate(context.Background())
	}
}

func TestTodoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoRepositoryTestSuite))
}

func (s *TodoRepositoryTestSuite) TestRepository_ListAll_Empty() {
	todos, err := s.TodoRepo.ListAll(context.Background())

	Expect(err).To(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoRepositoryTestSuite) TestRepository_CreateAndToggle() {
	ctx := context.Background()

	created, err := s.TodoRepo.Create(ctx, "Buy milk")
	Expect(err).To(BeNil())
	Expect(created.Done).To(BeFalse())

	Expect(s.TodoRepo.SetDone(ctx, created.ID, true)).To(Succeed())

	todos, err := s.TodoRepo.ListAll(ctx)
	Expect(err).To(BeNil())
	Expect(todos).To(ConsistOf(domain.Todo{ID: created.ID, Title: "Buy milk", Done: true}))
}

func (s *TodoRepositoryTestSuite) TestRepository_SetDone_NotFound() {
	err := s.TodoRepo.SetDone(context.Background(), 4242, true)

	Expect(err).To(MatchError(domain.ErrTodoNotFound))
}
