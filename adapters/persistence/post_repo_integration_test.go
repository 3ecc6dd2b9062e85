package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khanhvu/devconnect/internal/domain/post"
	"github.com/khanhvu/devconnect/pkg/apperror"
	"github.com/khanhvu/devconnect/pkg/logger"
)

type PostRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	postRepo    post.Repository
	testAuthor  uuid.UUID
}

func (s *PostRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.postRepo = NewPostgresPostRepo(s.dbPool, logger.NewNop())
	s.testAuthor = uuid.New()
}

func (s *PostRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestPostRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PostRepoIntegrationTestSuite))
}

func (s *PostRepoIntegrationTestSuite) newPersistedPost(text string, date time.Time) *post.Post {
	p := &post.Post{
		ID:       uuid.New(),
		UserID:   s.testAuthor,
		Text:     text,
		Name:     "Test Author",
		Avatar:   "https://gravatar.example/author",
		Likes:    []post.Like{},
		Comments: []post.Comment{},
		Date:     date,
	}
	s.Require().NoError(s.postRepo.Create(context.Background(), p))
	return p
}

func (s *PostRepoIntegrationTestSuite) Test_Create_And_FindByID() {
	ctx := context.Background()

	created := s.newPersistedPost("An integration test post body.", time.Now().UTC())

	found, err := s.postRepo.FindByID(ctx, created.ID)

	s.NoError(err)
	s.NotNil(found)
	s.Equal(created.Text, found.Text)
	s.Equal(s.testAuthor, found.UserID)
	s.Empty(found.Likes)
	s.Empty(found.Comments)
}

func (s *PostRepoIntegrationTestSuite) Test_FindByID_NotFound() {
	_, err := s.postRepo.FindByID(context.Background(), uuid.New())

	s.Error(err)
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PostRepoIntegrationTestSuite) Test_FindAll_NewestFirst() {
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	older := s.newPersistedPost("The older of the two posts.", base)
	newer := s.newPersistedPost("The newer of the two posts.", base.Add(time.Minute))

	all, err := s.postRepo.FindAll(ctx)

	s.NoError(err)
	s.GreaterOrEqual(len(all), 2)

	var olderIdx, newerIdx int
	for i, p := range all {
		switch p.ID {
		case older.ID:
			olderIdx = i
		case newer.ID:
			newerIdx = i
		}
	}
	s.Less(newerIdx, olderIdx)
}

func (s *PostRepoIntegrationTestSuite) Test_Update_PersistsLikesAndComments() {
	ctx := context.Background()

	p := s.newPersistedPost("A post collecting likes and comments.", time.Now().UTC())

	liker := uuid.New()
	p.Likes = []post.Like{{UserID: liker}}
	p.Comments = []post.Comment{
		{
			ID:     uuid.New(),
			UserID: liker,
			Text:   "A persisted comment body.",
			Name:   "Commenter",
			Avatar: "https://gravatar.example/c",
			Date:   time.Now().UTC(),
		},
	}
	s.NoError(s.postRepo.Update(ctx, p))

	found, err := s.postRepo.FindByID(ctx, p.ID)

	s.NoError(err)
	s.Len(found.Likes, 1)
	s.Equal(liker, found.Likes[0].UserID)
	s.Len(found.Comments, 1)
	s.Equal("A persisted comment body.", found.Comments[0].Text)
}

func (s *PostRepoIntegrationTestSuite) Test_Delete() {
	ctx := context.Background()

	p := s.newPersistedPost("A post about to disappear.", time.Now().UTC())

	s.NoError(s.postRepo.Delete(ctx, p.ID))

	_, err := s.postRepo.FindByID(ctx, p.ID)
	s.ErrorIs(err, apperror.ErrNotFound)

	// repeat delete is still a success
	s.NoError(s.postRepo.Delete(ctx, p.ID))
}
